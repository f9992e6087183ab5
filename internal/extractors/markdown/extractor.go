// Package markdown provides the Markdown extractor.
//
// The body is handed to the atomizer verbatim so the reconstructability
// invariant survives extraction; only the title is parsed out of the text.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var (
	headingRe     = regexp.MustCompile(`(?m)^#{1,2}\s+(.+)$`)
	frontMatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n?`)
	titleKeyRe    = regexp.MustCompile(`(?m)^title:\s*(.+)$`)
)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedFormats returns the format tags this extractor handles.
func (e *Extractor) SupportedFormats() []string {
	return []string{"markdown"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific, above the plaintext fallback
}

// Extract returns the Markdown body unchanged. The title comes from YAML
// front matter, the first top-level heading, or the file name, in that
// order. Front matter is removed from the body since it is metadata, not
// document text.
func (e *Extractor) Extract(_ context.Context, raw *driven.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	body := string(raw.Content)
	meta := make(map[string]any)

	var title string
	if fm := frontMatterRe.FindString(body); fm != "" {
		body = body[len(fm):]
		meta["front_matter"] = strings.TrimSpace(fm)
		if m := titleKeyRe.FindStringSubmatch(fm); m != nil {
			title = strings.Trim(strings.TrimSpace(m[1]), `"'`)
		}
	}
	if title == "" {
		if m := headingRe.FindStringSubmatch(body); m != nil {
			title = strings.TrimSpace(m[1])
		}
	}
	if title == "" {
		title = plaintext.TitleFromPath(raw.Path)
	}

	return &driven.ExtractResult{
		Title:    title,
		Text:     body,
		Metadata: meta,
	}, nil
}
