// Package rank orders candidate vectors by cosine similarity to a job
// description vector.
package rank

import "sort"

// Scored pairs a candidate's original index with its similarity score.
type Scored struct {
	Index int
	Score float64
}

// Rank scores every candidate vector against the job vector and returns the
// top-K results sorted by score descending. Vectors are expected to be
// length-normalized, so the score is a dot product clamped to [-1, 1] to
// absorb floating-point drift. The sort is stable: equal scores keep their
// original submission order. topK larger than the candidate count returns
// all candidates; topK <= 0 means no truncation.
func Rank(job []float32, candidates [][]float32, topK int) []Scored {
	scored := make([]Scored, len(candidates))
	for i, vec := range candidates {
		scored[i] = Scored{Index: i, Score: Clamp(Dot(job, vec))}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// Dot is the inner product of two vectors, accumulated in float64.
// Mismatched lengths are scored over the shorter prefix.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Clamp bounds a similarity score to [-1, 1].
func Clamp(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
