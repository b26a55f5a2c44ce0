package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/metrics"
)

const summarySystemPrompt = "You are an expert technical recruiter evaluating candidates."

// SummaryGenerator produces candidate fit summaries via chat completions.
type SummaryGenerator struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// NewSummaryGenerator creates a chat-completion summary provider.
func NewSummaryGenerator(cfg *Config) *SummaryGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &SummaryGenerator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Generate sends the prompt and returns the first completion. Errors wrap
// domain.ErrSummarization; the summarize service turns them into fallbacks.
func (g *SummaryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		return "", fmt.Errorf("chat completion: %v: %w", err, domain.ErrSummarization)
	}

	if len(resp.Choices) == 0 {
		metrics.SummaryRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrSummarization)
	}

	metrics.SummaryRequestsTotal.WithLabelValues(g.provider, g.model, "success").Inc()
	metrics.SummaryRequestDuration.WithLabelValues(g.provider, g.model).Observe(duration.Seconds())

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("blank completion text: %w", domain.ErrSummarization)
	}
	return out, nil
}
