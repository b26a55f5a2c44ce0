package openai

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

func newTestEmbedder(baseURL string) *Embedder {
	return NewEmbedder(&Config{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Model:    "text-embedding-3-small",
		Provider: "openai",
		Logger:   zap.NewNop(),
	})
}

func embeddingsHandler(t *testing.T, fn func(input []string) any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fn(req.Input))
	}
}

func TestBatchEmbed_OrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(input []string) any {
		// Return data out of order; Index must restore request order.
		return map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
			"usage": map[string]int{"prompt_tokens": 5, "total_tokens": 5},
		}
	}))
	defer srv.Close()

	e := newTestEmbedder(srv.URL)
	res, err := e.BatchEmbed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Embeddings[0][0] != 1 || res.Embeddings[1][1] != 1 {
		t.Errorf("vectors not reordered by index: %v", res.Embeddings)
	}
	if res.TotalTokens != 5 {
		t.Errorf("tokens: got %d, want 5", res.TotalTokens)
	}
}

func TestBatchEmbed_NormalizesVectors(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(input []string) any {
		return map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{3, 4}},
			},
			"usage": map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		}
	}))
	defer srv.Close()

	e := newTestEmbedder(srv.URL)
	res, err := e.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var norm float64
	for _, f := range res.Embedding {
		norm += float64(f) * float64(f)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Errorf("vector not unit length: %v (norm^2=%f)", res.Embedding, norm)
	}
}

func TestBatchEmbed_EmptyBatch(t *testing.T) {
	e := newTestEmbedder("http://unused")
	_, err := e.BatchEmbed(context.Background(), nil)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestBatchEmbed_BlankTextReplacedWithSpace(t *testing.T) {
	var gotInput []string
	srv := httptest.NewServer(embeddingsHandler(t, func(input []string) any {
		gotInput = input
		data := make([]map[string]any, len(input))
		for i := range input {
			data[i] = map[string]any{"index": i, "embedding": []float32{1}}
		}
		return map[string]any{"data": data, "usage": map[string]int{}}
	}))
	defer srv.Close()

	e := newTestEmbedder(srv.URL)
	if _, err := e.BatchEmbed(context.Background(), []string{""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotInput) != 1 || gotInput[0] != " " {
		t.Errorf("blank text not replaced: %q", gotInput)
	}
}

func TestBatchEmbed_ShortResponse(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(input []string) any {
		return map[string]any{
			"data":  []map[string]any{{"index": 0, "embedding": []float32{1}}},
			"usage": map[string]int{},
		}
	}))
	defer srv.Close()

	e := newTestEmbedder(srv.URL)
	_, err := e.BatchEmbed(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Errorf("got %v, want ErrEmbeddingProvider", err)
	}
}

func TestBatchEmbed_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"rate limit exceeded"}`))
	}))
	defer srv.Close()

	e := newTestEmbedder(srv.URL)
	_, err := e.BatchEmbed(context.Background(), []string{"text"})
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Errorf("got %v, want ErrEmbeddingProvider", err)
	}
}
