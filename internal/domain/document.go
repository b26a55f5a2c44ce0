package domain

// Format tags the encoding of a submitted document payload.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

// Document is a raw candidate submission: bytes tagged with a format.
// SourceID identifies the originating upload or text block and is stable
// for the duration of the request.
type Document struct {
	SourceID string
	Format   Format
	Payload  []byte
}
