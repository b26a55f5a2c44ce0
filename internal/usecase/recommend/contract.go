package recommend

import (
	"context"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

// Extractor converts a tagged document into normalized plain text.
type Extractor interface {
	Extract(doc domain.Document) (string, error)
}

// Parser extracts contact fields from résumé text. Total: never fails.
type Parser interface {
	Parse(text string) domain.Candidate
}

// Deduplicator collapses candidates representing the same person and
// reports merges as warnings.
type Deduplicator interface {
	Deduplicate(candidates []domain.Candidate) ([]domain.Candidate, []string)
}

// Embedder vectorizes the job description and candidate texts.
type Embedder interface {
	domain.Embedder
	domain.BatchEmbedder
}

// Summarizer produces a fit explanation. Total: always returns a string,
// falling back to a local template on provider failure.
type Summarizer interface {
	Summarize(ctx context.Context, jobText, candidateText string, score float64) string
}
