package resumerank

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

// stubEmbedder scores texts by their first byte so ranking is predictable.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: vectorFor(text)}, nil
}

func (stubEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vectorFor(t)
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func vectorFor(text string) []float32 {
	if len(text) > 0 && text[0] == 'g' {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestClient_Recommend(t *testing.T) {
	client, err := New(context.Background(), WithEmbedder(stubEmbedder{}))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	rec, err := client.Recommend(context.Background(), "golang engineer",
		TextDocument("cand_1", "java developer resume"),
		TextDocument("cand_2", "golang developer resume"),
	)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if len(rec.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(rec.Candidates))
	}
	if rec.Candidates[0].Candidate.SourceID != "cand_2" {
		t.Errorf("best match: got %s, want cand_2", rec.Candidates[0].Candidate.SourceID)
	}
	if rec.Candidates[0].Summary == "" {
		t.Error("summary must never be empty")
	}
}

func TestClient_RecommendTopK(t *testing.T) {
	client, err := New(context.Background(), WithEmbedder(stubEmbedder{}))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	rec, err := client.RecommendTopK(context.Background(), "golang engineer", 1,
		TextDocument("cand_1", "resume one text"),
		TextDocument("cand_2", "resume two text"),
	)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(rec.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1", len(rec.Candidates))
	}
}

func TestClient_NoValidCandidates(t *testing.T) {
	client, err := New(context.Background(), WithEmbedder(stubEmbedder{}))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	_, err = client.Recommend(context.Background(), "golang engineer",
		FileDocument("cand_1", FormatPDF, []byte("not a pdf")),
	)
	if !errors.Is(err, ErrNoValidCandidates) {
		t.Errorf("got %v, want ErrNoValidCandidates", err)
	}
}
