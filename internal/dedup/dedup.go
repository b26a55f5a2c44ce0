// Package dedup collapses candidates that represent the same person across
// multiple submitted documents.
package dedup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/parse"
)

// DefaultNameMatchOverlap is the token-overlap ratio two same-named résumés
// must reach before being treated as the same person. The guard keeps two
// different people who share a common name apart.
const DefaultNameMatchOverlap = 0.6

// Deduplicator groups duplicate candidates and keeps one representative per
// group. Grouping is computed as a transitive closure (union-find), so
// chained matches (A~B by email, B~C by phone) collapse into one group
// regardless of input order.
type Deduplicator struct {
	nameMatchOverlap float64
}

// New creates a deduplicator. overlap <= 0 selects the default threshold.
func New(overlap float64) Deduplicator {
	if overlap <= 0 {
		overlap = DefaultNameMatchOverlap
	}
	return Deduplicator{nameMatchOverlap: overlap}
}

// Deduplicate returns the surviving candidates in first-occurrence order
// plus a warning per merged group. The representative of each group is the
// candidate with the longest raw text, assumed most complete. The operation
// is idempotent.
func (d Deduplicator) Deduplicate(candidates []domain.Candidate) ([]domain.Candidate, []string) {
	n := len(candidates)
	if n < 2 {
		return candidates, nil
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d.sameCandidate(candidates[i], candidates[j]) {
				uf.union(i, j)
			}
		}
	}

	// Group members in first-occurrence order.
	groups := make(map[int][]int, n)
	var order []int
	for i := 0; i < n; i++ {
		root := uf.find(i)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}

	survivors := make([]domain.Candidate, 0, len(order))
	var warnings []string
	for _, root := range order {
		members := groups[root]
		rep := members[0]
		for _, m := range members[1:] {
			if len(candidates[m].RawText) > len(candidates[rep].RawText) {
				rep = m
			}
		}
		survivors = append(survivors, candidates[rep])

		if len(members) > 1 {
			ids := make([]string, len(members))
			for k, m := range members {
				ids[k] = candidates[m].SourceID
			}
			warnings = append(warnings, fmt.Sprintf(
				"candidates %s were merged as duplicates; kept %s",
				strings.Join(ids, ", "), candidates[rep].SourceID,
			))
		}
	}

	return survivors, warnings
}

// sameCandidate reports whether two candidates represent the same person:
// equal non-empty emails, equal non-empty phones, or equal names backed by
// high raw-text token overlap.
func (d Deduplicator) sameCandidate(a, b domain.Candidate) bool {
	if ae, be := parse.NormalizeEmail(a.Email), parse.NormalizeEmail(b.Email); ae != "" && ae == be {
		return true
	}
	if ap, bp := parse.NormalizePhone(a.Phone), parse.NormalizePhone(b.Phone); ap != "" && ap == bp {
		return true
	}
	an, bn := normalizeName(a.Name), normalizeName(b.Name)
	if an != "" && an == bn {
		return tokenOverlap(a.RawText, b.RawText) >= d.nameMatchOverlap
	}
	return false
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// tokenOverlap is |A ∩ B| / min(|A|, |B|) over lowercase alphanumeric
// tokens. The min denominator keeps a short résumé that is a subset of a
// longer one scoring high.
func tokenOverlap(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	small, large := ta, tb
	if len(tb) < len(ta) {
		small, large = tb, ta
	}
	var common int
	for tok := range small {
		if _, ok := large[tok]; ok {
			common++
		}
	}
	return float64(common) / float64(len(small))
}

func tokenSet(s string) map[string]struct{} {
	s = nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// unionFind is a classic disjoint-set with path compression.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union attaches the larger root to the smaller so group roots stay at the
// earliest member index, preserving first-occurrence ordering.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}
