// Package extract converts raw candidate documents (PDF, DOCX, plain text)
// into normalized plain text, preserving reading order for field parsing.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/kailas-cloud/resumerank/internal/domain"
)

// Extractor extracts normalized text from one document format.
type Extractor interface {
	Extract(doc domain.Document) (string, error)
}

// Service dispatches extraction by document format.
type Service struct {
	byFormat map[domain.Format]Extractor
}

// New creates an extraction service with PDF, DOCX, and plain-text support.
func New() *Service {
	return &Service{
		byFormat: map[domain.Format]Extractor{
			domain.FormatPDF:  pdfExtractor{},
			domain.FormatDOCX: docxExtractor{},
			domain.FormatText: textExtractor{},
		},
	}
}

// Extract returns the normalized text of a document. All failures wrap
// domain.ErrExtraction: corrupt payloads, unknown formats, and documents
// that are empty after normalization.
func (s *Service) Extract(doc domain.Document) (string, error) {
	ex, ok := s.byFormat[doc.Format]
	if !ok {
		return "", fmt.Errorf("unsupported format %q: %w", doc.Format, domain.ErrExtraction)
	}

	text, err := ex.Extract(doc)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", doc.Format, err)
	}

	text = Normalize(text)
	if text == "" {
		return "", fmt.Errorf("document %s is empty after extraction: %w", doc.SourceID, domain.ErrExtraction)
	}
	return text, nil
}

type pdfExtractor struct{}

// Extract concatenates page text in document order.
func (pdfExtractor) Extract(doc domain.Document) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(doc.Payload), int64(len(doc.Payload)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %v: %w", err, domain.ErrExtraction)
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plain text: %v: %w", err, domain.ErrExtraction)
	}

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("read pdf text: %v: %w", err, domain.ErrExtraction)
	}
	return buf.String(), nil
}

type docxExtractor struct{}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// Extract pulls paragraph text out of word/document.xml. Paragraph
// boundaries become newlines so the parser still sees the first line.
func (docxExtractor) Extract(doc domain.Document) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(doc.Payload), int64(len(doc.Payload)))
	if err != nil {
		return "", fmt.Errorf("read docx archive: %v: %w", err, domain.ErrExtraction)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %v: %w", err, domain.ErrExtraction)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("read document.xml: %v: %w", err, domain.ErrExtraction)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml in docx: %w", domain.ErrExtraction)
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return xmlTagRe.ReplaceAllString(xml, " "), nil
}

type textExtractor struct{}

func (textExtractor) Extract(doc domain.Document) (string, error) {
	return string(doc.Payload), nil
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
)

// Normalize collapses whitespace runs and strips control characters while
// preserving line boundaries (the name heuristic depends on them).
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		if r == '\u00A0' {
			return ' '
		}
		return r
	}, s)

	s = spaceRunRe.ReplaceAllString(s, " ")
	s = newlineRunRe.ReplaceAllString(s, "\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
