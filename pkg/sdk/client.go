package resumerank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/db"
	dbRedis "github.com/kailas-cloud/resumerank/internal/db/redis"
	"github.com/kailas-cloud/resumerank/internal/dedup"
	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/extract"
	"github.com/kailas-cloud/resumerank/internal/parse"
	"github.com/kailas-cloud/resumerank/internal/repository/embcache"
	"github.com/kailas-cloud/resumerank/internal/summarize"
	openaiTransport "github.com/kailas-cloud/resumerank/internal/transport/openai"
	"github.com/kailas-cloud/resumerank/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Domain types re-exported for SDK consumers.
type (
	Document        = domain.Document
	Format          = domain.Format
	Candidate       = domain.Candidate
	ScoredCandidate = domain.ScoredCandidate
	Recommendation  = domain.Recommendation
)

// Supported document formats.
const (
	FormatPDF  = domain.FormatPDF
	FormatDOCX = domain.FormatDOCX
	FormatText = domain.FormatText
)

// Embedder is the vectorization contract for custom providers.
type Embedder interface {
	domain.Embedder
	domain.BatchEmbedder
}

// Client is the resumerank SDK entry point.
type Client struct {
	svc   *recommend.Service
	store db.Store
}

// New creates a Client. The context is used for the cache readiness check
// when WithRedisCache is set.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		model:  "text-embedding-3-small",
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.embedder == nil && cfg.apiKey == "" {
		return nil, errors.New("resumerank: embedding credentials required (use WithOpenAI or WithEmbedder)")
	}

	var store db.Store
	if len(cfg.redisAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("resumerank: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("resumerank: cache not ready: %w", err)
		}
		store = s
	}

	embedder := cfg.embedder
	if embedder == nil {
		embedder = openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.apiKey,
			BaseURL:    cfg.baseURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
			Provider:   "openai",
			Logger:     cfg.logger,
		})
	}
	if store != nil {
		embedder = embcache.New(
			embedder, store, "resumerank:", cfg.model, cfg.cacheTTL, nil, cfg.logger,
		)
	}

	svc := recommend.New(
		extract.New(),
		parse.New(),
		dedup.New(cfg.nameMatchOverlap),
		embedder,
		summarize.New(cfg.summaryGen, cfg.summaryTimeout, cfg.logger),
		cfg.logger,
	)
	if cfg.topK > 0 {
		svc = svc.WithTopK(cfg.topK)
	}

	return &Client{svc: svc, store: store}, nil
}

// Recommend ranks the documents against the job description.
func (c *Client) Recommend(ctx context.Context, jobDescription string, docs ...Document) (Recommendation, error) {
	return c.svc.Recommend(ctx, recommend.Request{
		Job:       domain.JobDescription{Text: jobDescription},
		Documents: docs,
	})
}

// RecommendTopK ranks the documents and returns at most k candidates.
func (c *Client) RecommendTopK(ctx context.Context, jobDescription string, k int, docs ...Document) (Recommendation, error) {
	return c.svc.Recommend(ctx, recommend.Request{
		Job:       domain.JobDescription{Text: jobDescription},
		Documents: docs,
		TopK:      k,
	})
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// TextDocument wraps raw résumé text as a document.
func TextDocument(sourceID, text string) Document {
	return Document{SourceID: sourceID, Format: FormatText, Payload: []byte(text)}
}

// FileDocument wraps PDF or DOCX file contents as a document.
func FileDocument(sourceID string, format Format, payload []byte) Document {
	return Document{SourceID: sourceID, Format: format, Payload: payload}
}

// newOpenAIGenerator builds the chat-completion summary provider used by
// WithOpenAISummaries.
func newOpenAIGenerator(apiKey, model string) Generator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return openaiTransport.NewSummaryGenerator(&openaiTransport.Config{
		APIKey:   apiKey,
		Model:    model,
		Provider: "openai",
		Logger:   zap.NewNop(),
	})
}
