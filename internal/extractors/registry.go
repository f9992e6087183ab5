package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors/markdown"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors/plaintext"
)

// Registry selects the appropriate extractor for a document format.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates an extractor registry with the built-in extractors.
func NewRegistry() *Registry {
	return &Registry{
		extractors: []driven.Extractor{
			plaintext.New(),
			markdown.New(),
		},
	}
}

// Register adds an extractor.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors = append(r.extractors, e)
}

// Extract runs the highest-priority extractor supporting the raw
// document's format. Fails with ErrUnsupportedFormat if none matches.
func (r *Registry) Extract(ctx context.Context, raw *driven.RawDocument) (*driven.ExtractResult, error) {
	var best driven.Extractor
	for _, e := range r.extractors {
		if !supports(e, raw.Format) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, raw.Format)
	}
	return best.Extract(ctx, raw)
}

func supports(e driven.Extractor, format string) bool {
	for _, f := range e.SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// DetectFormat maps a file extension to a format tag.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	default:
		return "plain"
	}
}
