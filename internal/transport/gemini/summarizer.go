// Package gemini provides summary generation via the Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/metrics"
)

const defaultModel = "gemini-2.5-flash"

// SummaryGenerator wraps the GenAI client for prompt-based summary generation.
type SummaryGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewSummaryGenerator creates a Gemini-backed summary provider.
func NewSummaryGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*SummaryGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &SummaryGenerator{client: client, model: model, logger: logger}, nil
}

// Generate sends the prompt to Gemini and returns the concatenated textual
// response. Errors wrap domain.ErrSummarization.
func (g *SummaryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)

	duration := time.Since(start)

	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues("gemini", g.model, "error").Inc()
		return "", fmt.Errorf("generate content: %v: %w", err, domain.ErrSummarization)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	out := strings.TrimSpace(builder.String())
	if out == "" {
		metrics.SummaryRequestsTotal.WithLabelValues("gemini", g.model, "error").Inc()
		return "", fmt.Errorf("gemini returned empty response: %w", domain.ErrSummarization)
	}

	metrics.SummaryRequestsTotal.WithLabelValues("gemini", g.model, "success").Inc()
	metrics.SummaryRequestDuration.WithLabelValues("gemini", g.model).Observe(duration.Seconds())

	return out, nil
}
