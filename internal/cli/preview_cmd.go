// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// preview_cmd.go - The preview command: the transcript as Markdown in the
// terminal.
package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/PoChenKuo/chat-gpt-reader/internal/export"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
)

// HandlePreview renders the transcript to the terminal. Markdown is styled
// with glamour only when stdout is a terminal, so piped output stays plain.
func HandlePreview(app *App) error {
	in, err := app.loadInput()
	if err != nil {
		return err
	}
	if in.IsEmpty() {
		fmt.Fprintf(app.Stderr, "%s\n%s\n",
			WarningStyle.Render(app.T("app.chat.noMessages")),
			DimStyle.Render(app.T("app.chat.noMessagesDesc")))
		return printing.ErrEmptyTranscript
	}

	md, err := app.previewMarkdown(in)
	if err != nil {
		return err
	}

	if !app.StdoutTTY {
		_, err := app.Stdout.Write(md)
		return err
	}

	rendered := renderMarkdown(string(md), app.wordWrap())
	if app.Args.Pager {
		return runPager(app, in, rendered)
	}
	_, err = fmt.Fprint(app.Stdout, rendered)
	return err
}

func (a *App) previewMarkdown(in *Input) ([]byte, error) {
	doc := &export.Document{
		Title:       in.Title,
		SourceFile:  in.SourceFile,
		Turns:       in.Turns,
		ShowHeaders: a.visibility().ShowHeader(),
		Labels:      a.T,
		Lang:        a.Catalog.Code(),
	}
	return export.NewMarkdownExporter().Export(doc)
}

// wordWrap returns the configured wrap width, or the terminal width.
func (a *App) wordWrap() int {
	if a.Config.UI.WordWrap > 0 {
		return a.Config.UI.WordWrap
	}
	return GetTerminalWidth()
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if ColorsEnabled() {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
