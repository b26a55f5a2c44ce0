package rank

import (
	"math"
	"testing"
)

func TestRank_OrdersByScoreDescending(t *testing.T) {
	job := []float32{1, 0, 0}
	candidates := [][]float32{
		{0, 1, 0},         // 0.0
		{1, 0, 0},         // 1.0
		{0.707, 0.707, 0}, // ~0.707
	}

	got := Rank(job, candidates, 0)

	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	wantOrder := []int{1, 2, 0}
	for i, want := range wantOrder {
		if got[i].Index != want {
			t.Errorf("position %d: got index %d, want %d", i, got[i].Index, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	job := []float32{1, 0}
	candidates := [][]float32{
		{1, 0},
		{1, 0},
		{1, 0},
	}

	got := Rank(job, candidates, 0)

	for i := range got {
		if got[i].Index != i {
			t.Errorf("tie ordering broken: position %d got index %d", i, got[i].Index)
		}
	}
}

func TestRank_TopKTruncates(t *testing.T) {
	job := []float32{1, 0}
	candidates := [][]float32{{1, 0}, {0, 1}, {0.5, 0.5}, {0.9, 0.1}}

	got := Rank(job, candidates, 2)

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Index != 0 {
		t.Errorf("best candidate: got index %d, want 0", got[0].Index)
	}
}

func TestRank_TopKLargerThanCandidates(t *testing.T) {
	got := Rank([]float32{1}, [][]float32{{1}, {0}}, 10)
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestRank_EmptyCandidates(t *testing.T) {
	got := Rank([]float32{1, 0}, nil, 5)
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestRank_ClampsFloatDrift(t *testing.T) {
	// Slightly over-unit vectors can push the dot product past 1.0.
	job := []float32{1.0000001, 0}
	candidates := [][]float32{{1.0000001, 0}}

	got := Rank(job, candidates, 0)

	if got[0].Score > 1 {
		t.Errorf("score %f exceeds 1", got[0].Score)
	}
}

func TestDot_MismatchedLengthsUseShorterPrefix(t *testing.T) {
	got := Dot([]float32{1, 2, 3}, []float32{4, 5})
	if got != 14 {
		t.Errorf("got %f, want 14", got)
	}
}

func TestDot_OppositeVectors(t *testing.T) {
	got := Dot([]float32{1, 0}, []float32{-1, 0})
	if math.Abs(got+1) > 1e-9 {
		t.Errorf("got %f, want -1", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.5, 1},
		{-1.5, -1},
		{0.42, 0.42},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
