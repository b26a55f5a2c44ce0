// Package recommend orchestrates one recommendation request through the
// pipeline: extract, parse, deduplicate, embed, rank, summarize.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/rank"
)

// Defaults for pipeline tuning knobs.
const (
	DefaultTopK               = 5
	MaxTopK                   = 20
	defaultExtractWorkers     = 4
	defaultSummaryConcurrency = 4

	// thinContentTokens is the minimum token count below which a résumé
	// gets a thin-content warning (it still participates in ranking).
	thinContentTokens = 3
)

// Request is one recommendation request: a job description plus candidate
// documents. TopK <= 0 selects the configured default.
type Request struct {
	Job       domain.JobDescription
	Documents []domain.Document
	TopK      int
}

// Service runs the recommendation pipeline. Stateless across requests:
// every call is an independent unit of work.
type Service struct {
	extractor  Extractor
	parser     Parser
	dedup      Deduplicator
	embedder   Embedder
	summarizer Summarizer
	logger     *zap.Logger

	defaultTopK        int
	extractWorkers     int
	summaryConcurrency int
}

// New creates a recommendation service.
func New(
	extractor Extractor,
	parser Parser,
	dedup Deduplicator,
	embedder Embedder,
	summarizer Summarizer,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor:          extractor,
		parser:             parser,
		dedup:              dedup,
		embedder:           embedder,
		summarizer:         summarizer,
		logger:             logger,
		defaultTopK:        DefaultTopK,
		extractWorkers:     defaultExtractWorkers,
		summaryConcurrency: defaultSummaryConcurrency,
	}
}

// WithTopK overrides the default result count.
func (s *Service) WithTopK(topK int) *Service {
	if topK > 0 {
		s.defaultTopK = topK
	}
	return s
}

// WithSummaryConcurrency bounds in-flight summary generation calls.
func (s *Service) WithSummaryConcurrency(n int) *Service {
	if n > 0 {
		s.summaryConcurrency = n
	}
	return s
}

// WithExtractWorkers sizes the document extraction worker pool.
func (s *Service) WithExtractWorkers(n int) *Service {
	if n > 0 {
		s.extractWorkers = n
	}
	return s
}

// Recommend runs the full pipeline. Per-document extraction failures become
// warnings; the request fails only when no document survives
// (domain.ErrNoValidCandidates) or when embedding fails.
func (s *Service) Recommend(ctx context.Context, req Request) (domain.Recommendation, error) {
	if strings.TrimSpace(req.Job.Text) == "" {
		return domain.Recommendation{}, fmt.Errorf("job description is required")
	}
	if len(req.Documents) == 0 {
		return domain.Recommendation{}, domain.ErrNoValidCandidates
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	candidates, warnings := s.extractAndParse(req.Documents)
	if len(candidates) == 0 {
		return domain.Recommendation{}, fmt.Errorf(
			"all %d documents failed extraction: %w", len(req.Documents), domain.ErrNoValidCandidates,
		)
	}

	candidates, dedupWarnings := s.dedup.Deduplicate(candidates)
	warnings = append(warnings, dedupWarnings...)

	jobRes, err := s.embedder.Embed(ctx, req.Job.Text)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("embed job description: %w", err)
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.RawText
	}
	batch, err := s.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("embed candidates: %w", err)
	}

	ranked := rank.Rank(jobRes.Embedding, batch.Embeddings, topK)

	scored := make([]domain.ScoredCandidate, len(ranked))
	for i, r := range ranked {
		scored[i] = domain.ScoredCandidate{
			Candidate: candidates[r.Index],
			Rank:      i + 1,
			Score:     r.Score,
		}
	}

	s.summarizeAll(ctx, req.Job.Text, scored)

	s.logger.Info("recommendation complete",
		zap.Int("documents", len(req.Documents)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(scored)),
		zap.Int("warnings", len(warnings)),
	)

	return domain.Recommendation{Candidates: scored, Warnings: warnings}, nil
}

// extractAndParse runs extraction and parsing on a worker pool, then
// restores submission order: deduplication depends on stable first
// occurrence semantics. Failed documents are dropped with a warning.
func (s *Service) extractAndParse(docs []domain.Document) ([]domain.Candidate, []string) {
	type outcome struct {
		candidate domain.Candidate
		err       error
	}
	outcomes := make([]outcome, len(docs))

	workers := s.extractWorkers
	if workers > len(docs) {
		workers = len(docs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				text, err := s.extractor.Extract(docs[i])
				if err != nil {
					outcomes[i] = outcome{err: err}
					continue
				}
				cand := s.parser.Parse(text)
				cand.SourceID = docs[i].SourceID
				outcomes[i] = outcome{candidate: cand}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var candidates []domain.Candidate
	var warnings []string
	for i, out := range outcomes {
		if out.err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"document %s could not be parsed: %v", docs[i].SourceID, out.err,
			))
			s.logger.Warn("document dropped",
				zap.String("source_id", docs[i].SourceID),
				zap.Error(out.err),
			)
			continue
		}

		cand := out.candidate
		cand.Name = cand.DisplayName(i + 1)
		if len(strings.Fields(cand.RawText)) < thinContentTokens {
			warnings = append(warnings, fmt.Sprintf(
				"document %s has very little content; its ranking may be unreliable", docs[i].SourceID,
			))
		}
		candidates = append(candidates, cand)
	}
	return candidates, warnings
}

// summarizeAll fills in summaries with bounded concurrency. The summarizer
// is total, so a slow or failing provider degrades individual summaries to
// the local fallback without affecting the others.
func (s *Service) summarizeAll(ctx context.Context, jobText string, scored []domain.ScoredCandidate) {
	sem := make(chan struct{}, s.summaryConcurrency)
	var wg sync.WaitGroup
	for i := range scored {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			scored[i].Summary = s.summarizer.Summarize(
				ctx, jobText, scored[i].Candidate.RawText, scored[i].Score,
			)
		}(i)
	}
	wg.Wait()
}
