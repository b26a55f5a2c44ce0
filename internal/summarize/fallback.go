package summarize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// maxSharedKeywords caps the keyword list appended to fallback summaries.
const maxSharedKeywords = 4

// stopwords excluded from keyword overlap.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "have": {}, "will": {}, "are": {}, "was": {}, "were": {},
	"has": {}, "had": {}, "not": {}, "you": {}, "your": {}, "our": {},
	"years": {}, "year": {}, "work": {}, "working": {}, "experience": {},
}

var wordRe = regexp.MustCompile(`[a-z0-9+#]+`)

// Fallback builds the deterministic local summary from the similarity score
// band and the keyword overlap between job and résumé text.
func Fallback(jobText, candidateText string, score float64) string {
	var base string
	switch {
	case score > 0.8:
		base = fmt.Sprintf("This candidate demonstrates excellent alignment with the job requirements. The high similarity score of %.3f suggests a strong potential fit.", score)
	case score > 0.6:
		base = fmt.Sprintf("This candidate shows good alignment with the job requirements, supported by a similarity score of %.3f.", score)
	case score > 0.4:
		base = fmt.Sprintf("This candidate has a moderate match for the job, with a similarity score of %.3f indicating some relevant qualifications.", score)
	default:
		base = fmt.Sprintf("This candidate has limited overlap with the job requirements, as indicated by a low similarity score of %.3f.", score)
	}

	if shared := sharedKeywords(jobText, candidateText); len(shared) > 0 {
		base += fmt.Sprintf(" Shared keywords: %s.", strings.Join(shared, ", "))
	}
	return base
}

// sharedKeywords returns up to maxSharedKeywords terms appearing in both
// texts, longest first, alphabetical within equal length, so the output is
// deterministic for fixed inputs.
func sharedKeywords(jobText, candidateText string) []string {
	jobTokens := keywordSet(jobText)
	candTokens := keywordSet(candidateText)

	var shared []string
	for tok := range jobTokens {
		if _, ok := candTokens[tok]; ok {
			shared = append(shared, tok)
		}
	}

	sort.Slice(shared, func(i, j int) bool {
		if len(shared[i]) != len(shared[j]) {
			return len(shared[i]) > len(shared[j])
		}
		return shared[i] < shared[j]
	})

	if len(shared) > maxSharedKeywords {
		shared = shared[:maxSharedKeywords]
	}
	return shared
}

func keywordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len(tok) < 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
