package domain

import "fmt"

// Candidate is one parsed résumé within a recommendation request.
// All fields except RawText and SourceID are best-effort metadata;
// an empty Name/Email/Phone is valid output.
type Candidate struct {
	SourceID string
	Name     string
	Email    string
	Phone    string
	RawText  string
}

// DisplayName returns the parsed name or a positional placeholder.
func (c Candidate) DisplayName(n int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Candidate %d", n)
}

// JobDescription is the vacancy text candidates are ranked against.
// One instance per request.
type JobDescription struct {
	Text string
}

// ScoredCandidate is a candidate with its similarity score, 1-based rank,
// and fit summary. Ordering among ScoredCandidates is the primary output.
type ScoredCandidate struct {
	Candidate Candidate
	Rank      int
	Score     float64
	Summary   string
}

// Recommendation is the final result of one request: the ranked list plus
// non-fatal warnings collected along the pipeline.
type Recommendation struct {
	Candidates []ScoredCandidate
	Warnings   []string
}
