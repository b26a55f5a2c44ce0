package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/config"
	"github.com/kailas-cloud/resumerank/internal/db"
	dbRedis "github.com/kailas-cloud/resumerank/internal/db/redis"
	"github.com/kailas-cloud/resumerank/internal/dedup"
	"github.com/kailas-cloud/resumerank/internal/extract"
	logpkg "github.com/kailas-cloud/resumerank/internal/logger"
	"github.com/kailas-cloud/resumerank/internal/metrics"
	"github.com/kailas-cloud/resumerank/internal/parse"
	"github.com/kailas-cloud/resumerank/internal/repository/embcache"
	"github.com/kailas-cloud/resumerank/internal/summarize"
	chiTransport "github.com/kailas-cloud/resumerank/internal/transport/chi"
	"github.com/kailas-cloud/resumerank/internal/transport/gemini"
	openaiTransport "github.com/kailas-cloud/resumerank/internal/transport/openai"
	"github.com/kailas-cloud/resumerank/internal/usecase/recommend"
	"github.com/kailas-cloud/resumerank/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting resumerank API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("summary_provider", cfg.Summary.Provider),
	)

	ctx := context.Background()

	// Embedding cache is optional: no addrs means every request hits the provider.
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	} else {
		logger.Info("Embedding cache disabled")
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSummaryMetrics()

	embedder := buildEmbedder(cfg, store, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", store != nil),
	)

	summarizer := buildSummarizer(ctx, cfg, logger)

	svc := recommend.New(
		extract.New(),
		parse.New(),
		dedup.New(cfg.Ranking.NameMatchOverlap),
		embedder,
		summarizer,
		logger,
	).
		WithTopK(cfg.Ranking.TopK).
		WithExtractWorkers(cfg.Ranking.ExtractWorkers).
		WithSummaryConcurrency(cfg.Summary.MaxConcurrent)

	server := chiTransport.NewServer(svc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: OpenAI -> Cached.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) recommend.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	if store == nil {
		return base
	}

	return embcache.New(
		base,
		store,
		cfg.Cache.KeyPrefix,
		cfg.Embedding.Model,
		time.Duration(cfg.Cache.TTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)
}

// buildSummarizer wires the summary provider. A missing api_key is not an
// error: the service runs with the local fallback only.
func buildSummarizer(ctx context.Context, cfg config.Config, logger *zap.Logger) *summarize.Service {
	timeout := time.Duration(cfg.Summary.TimeoutSec) * time.Second

	if cfg.Summary.APIKey == "" {
		logger.Warn("No summary api_key configured; using template summaries only")
		return summarize.New(nil, timeout, logger)
	}

	// Pass nil interface (not typed nil pointer!) when no provider is built.
	var gen summarize.Generator
	switch cfg.Summary.Provider {
	case "gemini":
		g, err := gemini.NewSummaryGenerator(ctx, cfg.Summary.APIKey, cfg.Summary.Model, logger)
		if err != nil {
			logger.Warn("Failed to create Gemini client; using template summaries only", zap.Error(err))
		} else {
			gen = g
		}
	default:
		gen = openaiTransport.NewSummaryGenerator(&openaiTransport.Config{
			APIKey:   cfg.Summary.APIKey,
			BaseURL:  cfg.Summary.BaseURL,
			Model:    cfg.Summary.Model,
			Provider: "openai",
			Logger:   logger,
		})
	}

	logger.Info("Summary provider configured",
		zap.String("provider", cfg.Summary.Provider),
		zap.String("model", cfg.Summary.Model),
		zap.Duration("timeout", timeout),
	)
	return summarize.New(gen, timeout, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
