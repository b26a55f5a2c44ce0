// Package summarize produces natural-language fit explanations for ranked
// candidates. A provider failure of any kind (timeout, auth, network,
// malformed response) is replaced by a deterministic local fallback; the
// service never returns an error.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/metrics"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 10 * time.Second

// promptSectionLimit caps job/résumé text included in the prompt.
const promptSectionLimit = 1000

// Generator is the external text generation contract.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service generates fit summaries with a guaranteed fallback path.
type Service struct {
	gen     Generator
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a summarizer. A nil generator disables the AI path entirely:
// every summary is the local fallback (used when no credentials are set).
func New(gen Generator, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{gen: gen, timeout: timeout, logger: logger}
}

// Summarize returns a short fit explanation for the candidate. Always
// returns a non-empty string.
func (s *Service) Summarize(ctx context.Context, jobText, candidateText string, score float64) string {
	if s.gen == nil {
		metrics.SummaryFallbackTotal.WithLabelValues("no_provider").Inc()
		return Fallback(jobText, candidateText, score)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.gen.Generate(ctx, buildPrompt(jobText, candidateText, score))
	if err != nil {
		reason := "provider_error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = "timeout"
		}
		metrics.SummaryFallbackTotal.WithLabelValues(reason).Inc()
		s.logger.Warn("summary generation failed, using fallback",
			zap.String("reason", reason),
			zap.Error(err),
		)
		return Fallback(jobText, candidateText, score)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		metrics.SummaryFallbackTotal.WithLabelValues("empty_response").Inc()
		return Fallback(jobText, candidateText, score)
	}
	return out
}

func buildPrompt(jobText, candidateText string, score float64) string {
	return fmt.Sprintf(`Job Description: %s

Candidate Resume: %s

Similarity Score: %.3f

Based on the job description and resume above, provide a professional 2-3 sentence summary explaining why this candidate is a good fit. Focus on:
- Skills and experience alignment
- Relevant qualifications
- Overall suitability`,
		truncate(jobText, promptSectionLimit),
		truncate(candidateText, promptSectionLimit),
		score,
	)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
