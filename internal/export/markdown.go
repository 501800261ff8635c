// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a transcript as Markdown. The terminal preview
// feeds this through glamour.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts a document to Markdown. Turn content is copied as is,
// since transcripts copied from chat UIs are usually Markdown already.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(doc.Title)))
	if doc.SourceFile != "" {
		sb.WriteString(fmt.Sprintf("*%s: %s*\n\n", doc.label(KeySourceFile), escapeMarkdown(doc.SourceFile)))
	}

	for i, turn := range doc.Turns {
		if doc.ShowHeaders {
			if turn.HasTimestamp() {
				sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", doc.roleLabel(turn.Role), turn.Timestamp))
			} else {
				sb.WriteString(fmt.Sprintf("### %s\n\n", doc.roleLabel(turn.Role)))
			}
		}

		sb.WriteString(strings.TrimSpace(turn.Content))
		sb.WriteString("\n\n")

		if i < len(doc.Turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeMarkdown escapes characters that would break a heading or an
// emphasis line.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
