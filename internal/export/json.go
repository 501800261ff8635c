// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the parsed transcript as JSON. Presentation settings
// are ignored so the output can be read back by transcript.DecodeJSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a document to JSON.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	out := model.Transcript{
		Title:      doc.Title,
		SourceFile: doc.SourceFile,
		Turns:      doc.Turns,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
