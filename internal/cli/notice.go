// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// notice.go - Blocking user notices for the print pipeline.
package cli

import (
	"bufio"
	"fmt"
	"io"
)

// TerminalNotifier shows renderer notices on stderr. When Wait is set it
// blocks until the user presses Enter, the way a dialog would.
type TerminalNotifier struct {
	Out  io.Writer
	In   io.Reader
	Wait bool

	// Prompt is shown after the message while waiting.
	Prompt string
}

// NewTerminalNotifier builds a notifier for app. It waits for Enter only
// when both stdin and stderr are terminals.
func NewTerminalNotifier(app *App) *TerminalNotifier {
	return &TerminalNotifier{
		Out:    app.Stderr,
		In:     app.Stdin,
		Wait:   CanPrompt() && !app.Args.JSON,
		Prompt: "Press Enter to continue",
	}
}

// Notify implements printing.Notifier.
func (n *TerminalNotifier) Notify(message string) {
	if ColorsEnabled() {
		fmt.Fprintln(n.Out, NoticeBoxStyle.Render(WarningStyle.Render(message)))
	} else {
		fmt.Fprintf(n.Out, "[NOTICE] %s\n", message)
	}

	if !n.Wait || n.In == nil {
		return
	}
	fmt.Fprint(n.Out, DimStyle.Render(n.Prompt)+" ")
	_, _ = bufio.NewReader(n.In).ReadString('\n')
}
