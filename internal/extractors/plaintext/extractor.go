// Package plaintext provides the fallback extractor for plain text files.
package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedFormats returns the format tags this extractor handles.
func (e *Extractor) SupportedFormats() []string {
	return []string{"plain", "text"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract passes the content through untouched. The title comes from the
// file name.
func (e *Extractor) Extract(_ context.Context, raw *driven.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return &driven.ExtractResult{
		Title: TitleFromPath(raw.Path),
		Text:  string(raw.Content),
	}, nil
}

// TitleFromPath extracts a human-readable title from a file path.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
