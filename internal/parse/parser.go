// Package parse extracts candidate contact fields from résumé text using
// ordered pattern heuristics. Parsing is total: malformed input yields a
// Candidate with empty fields, never an error.
package parse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	digitRe = regexp.MustCompile(`\d`)
)

// Common résumé section headers that must not be mistaken for a name.
var sectionHeaders = map[string]struct{}{
	"resume":           {},
	"curriculum vitae": {},
	"cv":               {},
	"summary":          {},
	"objective":        {},
	"profile":          {},
	"experience":       {},
	"education":        {},
	"skills":           {},
	"contact":          {},
}

// Parser parses résumé text into candidate records.
type Parser struct{}

// New creates a parser.
func New() Parser { return Parser{} }

// Parse extracts name, email, and phone from normalized résumé text.
// Absent fields stay empty; RawText always carries the full input.
func (Parser) Parse(text string) domain.Candidate {
	return domain.Candidate{
		RawText: text,
		Name:    extractName(text),
		Email:   emailRe.FindString(text),
		Phone:   NormalizePhone(phoneRe.FindString(text)),
	}
}

// extractName returns the first non-empty line if it looks like a personal
// name: at most four words, title-cased, no digits, not an email or phone,
// not a section header. Best-effort metadata only.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeName(line) {
			return line
		}
		return ""
	}
	return ""
}

func looksLikeName(line string) bool {
	if len(line) > 50 {
		return false
	}
	if strings.Contains(line, "@") || digitRe.MatchString(line) {
		return false
	}
	if _, ok := sectionHeaders[strings.ToLower(line)]; ok {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
		// All-caps words are likelier headers ("SENIOR ENGINEER") than names,
		// except initials like "J."
		if len(r) > 2 && strings.ToUpper(w) == w {
			return false
		}
	}
	return true
}

// NormalizeEmail lowercases and trims an email for comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone reduces a phone number to digits plus an optional leading
// plus, the canonical comparison form.
func NormalizePhone(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
