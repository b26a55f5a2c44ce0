package parse

import "testing"

const sampleResume = `Jane Doe
Senior Backend Engineer
jane.doe@example.com
(555) 123-4567

Experience
Built distributed systems in Go for eight years.`

func TestParse_FullContactBlock(t *testing.T) {
	p := New()
	cand := p.Parse(sampleResume)

	if cand.Name != "Jane Doe" {
		t.Errorf("name: got %q, want %q", cand.Name, "Jane Doe")
	}
	if cand.Email != "jane.doe@example.com" {
		t.Errorf("email: got %q, want %q", cand.Email, "jane.doe@example.com")
	}
	if cand.Phone != "5551234567" {
		t.Errorf("phone: got %q, want %q", cand.Phone, "5551234567")
	}
	if cand.RawText != sampleResume {
		t.Errorf("raw text not preserved")
	}
}

func TestParse_NoContactInfo(t *testing.T) {
	cand := New().Parse("experienced software developer who knows many languages")

	if cand.Name != "" || cand.Email != "" || cand.Phone != "" {
		t.Errorf("expected empty fields, got name=%q email=%q phone=%q",
			cand.Name, cand.Email, cand.Phone)
	}
}

func TestParse_EmptyText(t *testing.T) {
	cand := New().Parse("")
	if cand.Name != "" || cand.Email != "" || cand.Phone != "" {
		t.Errorf("expected zero candidate for empty text")
	}
}

func TestParse_InternationalPhone(t *testing.T) {
	cand := New().Parse("Reach me at +1-555-123-4567 anytime.")
	if cand.Phone != "+15551234567" {
		t.Errorf("got %q, want %q", cand.Phone, "+15551234567")
	}
}

func TestParse_FirstEmailWins(t *testing.T) {
	cand := New().Parse("primary: a@example.com backup: b@example.com")
	if cand.Email != "a@example.com" {
		t.Errorf("got %q, want first email", cand.Email)
	}
}

func TestExtractName_OnlyFirstLineConsidered(t *testing.T) {
	// A name buried below a non-name first line is not picked up.
	cand := New().Parse("SKILLS AND QUALIFICATIONS\nJane Doe\njane@example.com")
	if cand.Name != "" {
		t.Errorf("got %q, want empty name", cand.Name)
	}
}

func TestLooksLikeName(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Jane Doe", true},
		{"Mary Jane van Dyke", true},
		{"J. Smith", true},
		{"Li Wu", true},
		{"jane doe", false},             // not title-cased
		{"SENIOR ENGINEER", false},      // all caps
		{"Resume", false},               // section header
		{"Jane Doe 1984", false},        // digits
		{"jane.doe@example.com", false}, // email
		{"One Two Three Four Five", false},
		{"", false},
	}
	for _, c := range cases {
		if got := looksLikeName(c.line); got != c.want {
			t.Errorf("looksLikeName(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"(555) 123-4567", "5551234567"},
		{"+1 555.123.4567", "+15551234567"},
		{"555 123 4567", "5551234567"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
