package resumerank

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int

	redisAddrs    []string
	redisPassword string
	cacheTTL      time.Duration

	summaryGen     Generator
	summaryTimeout time.Duration

	topK             int
	nameMatchOverlap float64

	embedder Embedder

	logger *zap.Logger
}

// WithOpenAI sets the embedding provider API key.
func WithOpenAI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
	})
}

// WithBaseURL points the embedding provider at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
	})
}

// WithEmbeddingModel overrides the default embedding model.
func WithEmbeddingModel(model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = model
		c.dimensions = dimensions
	})
}

// WithRedisCache enables embedding caching in Redis.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.cacheTTL = ttl
	})
}

// WithOpenAISummaries enables AI summaries through the chat completion API.
func WithOpenAISummaries(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.summaryGen = newOpenAIGenerator(apiKey, model)
	})
}

// WithSummaryGenerator plugs in a custom summary provider.
func WithSummaryGenerator(gen Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.summaryGen = gen
	})
}

// WithSummaryTimeout bounds a single summary provider call.
func WithSummaryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.summaryTimeout = d
	})
}

// WithTopK sets the default number of returned candidates.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithNameMatchOverlap tunes the duplicate-detection text overlap threshold.
func WithNameMatchOverlap(overlap float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.nameMatchOverlap = overlap
	})
}

// WithEmbedder plugs in a custom embedder, bypassing the OpenAI provider.
// Intended for tests and self-hosted models.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = logger
	})
}

// Generator is the summary provider contract.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
