// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parse_cmd.go - The parse command: parsed turns on stdout.
package cli

import (
	"github.com/PoChenKuo/chat-gpt-reader/internal/export"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
)

// HandleParse writes the visible turns in the rendition named by --as
// (JSON by default). The JSON output can be fed back to print and preview.
func HandleParse(app *App) error {
	exporter, err := export.ForName(app.Args.As)
	if err != nil {
		return NewValidationErrorWithExample("--as", app.Args.As, err.Error(), "--as markdown")
	}

	in, err := app.loadInput()
	if err != nil {
		return err
	}
	if in.IsEmpty() {
		return printing.ErrEmptyTranscript
	}

	doc := &export.Document{
		Title:       in.Title,
		SourceFile:  in.SourceFile,
		Turns:       in.Turns,
		ShowHeaders: app.visibility().ShowHeader(),
		Labels:      app.T,
		Lang:        app.Catalog.Code(),
	}
	out, err := exporter.Export(doc)
	if err != nil {
		return NewCommandError("parse", "export", exporter.MimeType(), err)
	}

	app.Logger.Printf("PARSE_DONE | format=%s as=%s turns=%d bytes=%d",
		in.Format.ID, exporter.FileExtension(), in.Len(), len(out))
	_, err = app.Stdout.Write(out)
	return err
}
