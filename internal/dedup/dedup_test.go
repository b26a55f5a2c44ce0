package dedup

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

func cand(sourceID, name, email, phone, raw string) domain.Candidate {
	return domain.Candidate{SourceID: sourceID, Name: name, Email: email, Phone: phone, RawText: raw}
}

func TestDeduplicate_NoDuplicates(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "Jane Doe", "jane@example.com", "", "go backend engineer"),
		cand("file_2", "John Roe", "john@example.com", "", "frontend react developer"),
	}

	out, warnings := d.Deduplicate(in)

	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2", len(out))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestDeduplicate_EmailMatch_CaseInsensitive(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "Jane Doe", "Jane@Example.com", "", "short version"),
		cand("file_2", "J. Doe", "jane@example.com", "", "a much longer resume with more detail"),
	}

	out, warnings := d.Deduplicate(in)

	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
	if out[0].SourceID != "file_2" {
		t.Errorf("kept %s, want file_2 (longest raw text)", out[0].SourceID)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if !strings.Contains(warnings[0], "file_1") || !strings.Contains(warnings[0], "file_2") {
		t.Errorf("warning should name both sources: %q", warnings[0])
	}
}

func TestDeduplicate_PhoneMatch_DifferentFormatting(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "", "", "(555) 123-4567", "resume one"),
		cand("file_2", "", "", "555.123.4567", "resume two longer"),
	}

	out, _ := d.Deduplicate(in)

	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
}

func TestDeduplicate_TransitiveChain(t *testing.T) {
	// A~B share an email, B~C share a phone: all three collapse together.
	d := New(0)
	in := []domain.Candidate{
		cand("a", "", "jane@example.com", "", "one"),
		cand("b", "", "jane@example.com", "5551234567", "two two"),
		cand("c", "", "", "5551234567", "three three three"),
	}

	out, warnings := d.Deduplicate(in)

	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
	if out[0].SourceID != "c" {
		t.Errorf("kept %s, want c (longest raw text)", out[0].SourceID)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 merged group", len(warnings))
	}
}

func TestDeduplicate_SameNameHighOverlap_Merged(t *testing.T) {
	d := New(0)
	raw := "jane doe golang kubernetes postgres kafka distributed systems"
	in := []domain.Candidate{
		cand("file_1", "Jane Doe", "", "", raw),
		cand("file_2", "Jane Doe", "", "", raw+" plus grpc"),
	}

	out, _ := d.Deduplicate(in)

	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
}

func TestDeduplicate_SameNameLowOverlap_Kept(t *testing.T) {
	// Two different people sharing a common name stay separate.
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "Jane Doe", "", "", "golang kubernetes postgres backend microservices"),
		cand("file_2", "Jane Doe", "", "", "oil painting sculpture gallery exhibitions curation"),
	}

	out, warnings := d.Deduplicate(in)

	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2", len(out))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestDeduplicate_EmptyFieldsNeverMatch(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "", "", "", "text one"),
		cand("file_2", "", "", "", "text two"),
	}

	out, _ := d.Deduplicate(in)

	if len(out) != 2 {
		t.Fatalf("empty emails/phones must not match: got %d, want 2", len(out))
	}
}

func TestDeduplicate_PreservesFirstOccurrenceOrder(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("a", "", "a@example.com", "", "aa"),
		cand("b", "", "dup@example.com", "", "bb"),
		cand("c", "", "c@example.com", "", "cc"),
		cand("d", "", "dup@example.com", "", "d"),
	}

	out, _ := d.Deduplicate(in)

	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].SourceID != id {
			t.Errorf("position %d: got %s, want %s", i, out[i].SourceID, id)
		}
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{
		cand("file_1", "", "jane@example.com", "", "one"),
		cand("file_2", "", "jane@example.com", "", "two two"),
		cand("file_3", "", "other@example.com", "", "three"),
	}

	once, _ := d.Deduplicate(in)
	twice, warnings := d.Deduplicate(once)

	if len(twice) != len(once) {
		t.Fatalf("second pass changed size: %d -> %d", len(once), len(twice))
	}
	if len(warnings) != 0 {
		t.Errorf("second pass produced warnings: %v", warnings)
	}
}

func TestDeduplicate_SingleCandidate(t *testing.T) {
	d := New(0)
	in := []domain.Candidate{cand("file_1", "Jane Doe", "", "", "text")}

	out, warnings := d.Deduplicate(in)

	if len(out) != 1 || len(warnings) != 0 {
		t.Errorf("single candidate must pass through unchanged")
	}
}

func TestTokenOverlap_SubsetScoresHigh(t *testing.T) {
	short := "golang kubernetes postgres"
	long := short + " kafka grpc terraform aws docker"

	if got := tokenOverlap(short, long); got != 1.0 {
		t.Errorf("subset overlap: got %f, want 1.0", got)
	}
}

func TestTokenOverlap_Disjoint(t *testing.T) {
	if got := tokenOverlap("alpha beta", "gamma delta"); got != 0 {
		t.Errorf("got %f, want 0", got)
	}
}
