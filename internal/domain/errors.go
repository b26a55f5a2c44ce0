package domain

import "errors"

var (
	// ErrExtraction signals an unreadable, unsupported, or empty document.
	// Per-document and non-fatal to the request.
	ErrExtraction = errors.New("document extraction failed")
	// ErrEmbeddingProvider signals an embedding provider failure. Fatal to
	// the request: without vectors there is no similarity signal.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrEmptyInput signals an empty embedding batch.
	ErrEmptyInput = errors.New("embedding input is empty")
	// ErrSummarization signals a summary provider failure. Always caught
	// inside the summarizer and replaced by the local fallback; it never
	// crosses the component boundary.
	ErrSummarization = errors.New("summary generation failed")
	// ErrNoValidCandidates signals that zero usable candidates remain
	// after extraction and deduplication.
	ErrNoValidCandidates = errors.New("no valid candidates")
)
