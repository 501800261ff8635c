// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Label keys consumed by the renditions.
const (
	KeySourceFile = "app.print.sourceFile"
	KeyUser       = "app.chat.user"
	KeyAssistant  = "app.chat.assistant"
)

// Document is everything a rendition needs. It borrows Turns; exporters
// never modify them.
type Document struct {
	Title      string
	SourceFile string
	Turns      []model.Turn

	// ShowHeaders controls the per-turn role/timestamp line. It applies to
	// every turn alike.
	ShowHeaders bool

	// Labels resolves catalog keys to display strings.
	Labels func(key string) string

	// Lang is written to the html lang attribute. Empty means "en".
	Lang string
}

// roleLabel returns the localized label for a turn's role.
func (d *Document) roleLabel(role model.Role) string {
	return d.label(role.LabelKey())
}

func (d *Document) label(key string) string {
	if d.Labels == nil {
		return key
	}
	return d.Labels(key)
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript renditions.
type Exporter interface {
	// Export renders the document and returns the content.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the conventional file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type of the rendition.
	MimeType() string
}

// ForName returns the exporter registered under name.
func ForName(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return NewMarkdownExporter(), nil
	case "html", "htm":
		return NewHTMLExporter(), nil
	case "json", "":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", name)
	}
}

func validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if len(doc.Turns) == 0 {
		return fmt.Errorf("document has no turns")
	}
	return nil
}
