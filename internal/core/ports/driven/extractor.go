package driven

import "context"

// RawDocument is an unextracted source handed to an extractor.
type RawDocument struct {
	// Path is the source location, used for title fallback.
	Path string

	// Format is the detected format tag (e.g. "plain", "markdown").
	Format string

	// Content is the raw file content.
	Content []byte
}

// ExtractResult is the outcome of extraction: plain text ready for
// atomization. Text must be byte-for-byte what the atomizer should see;
// extractors never normalize the body.
type ExtractResult struct {
	Title    string
	Text     string
	Metadata map[string]any
}

// Extractor turns a raw document of a supported format into plain text.
// Extraction is the only I/O-adjacent stage; the core never parses files.
type Extractor interface {
	// SupportedFormats returns the format tags this extractor handles.
	SupportedFormats() []string

	// Priority orders extractors competing for a format (higher wins).
	// Format-specific extractors should return 50-89, fallbacks 1-9.
	Priority() int

	// Extract produces the document text and title.
	Extract(ctx context.Context, raw *RawDocument) (*ExtractResult, error)
}
