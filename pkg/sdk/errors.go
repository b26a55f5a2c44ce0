package resumerank

import "github.com/kailas-cloud/resumerank/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrExtraction        = domain.ErrExtraction
	ErrEmbeddingProvider = domain.ErrEmbeddingProvider
	ErrEmptyInput        = domain.ErrEmptyInput
	ErrSummarization     = domain.ErrSummarization
	ErrNoValidCandidates = domain.ErrNoValidCandidates
)
