// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// input.go - Transcript loading shared by print, preview and parse.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/config"
	"github.com/PoChenKuo/chat-gpt-reader/internal/formats"
	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
	"github.com/PoChenKuo/chat-gpt-reader/internal/transcript"
)

// stdinName is the file argument that reads the transcript from stdin.
const stdinName = "-"

// Input is a loaded transcript ready for rendering. The embedded
// transcript holds only the visible turns, in file order; its SourceFile is
// the base name shown on the printed page and is empty for stdin.
type Input struct {
	*model.Transcript

	// Total counts the turns before role filtering.
	Total int
	// Format is the chat format the text was split with.
	Format formats.Resolved
}

// =============================================================================
// FORMAT SELECTION
// =============================================================================

// resolveFormat picks the chat format from --format, the picker or the
// configured default, and fills in custom prefixes.
func (a *App) resolveFormat() (formats.Resolved, error) {
	id := a.Args.Format
	if a.Args.Pick {
		picked, err := a.pickFormat()
		if err != nil {
			return formats.Resolved{}, err
		}
		id = picked
	}
	if id == "" {
		id = a.Config.DefaultFormat
	}

	f, ok := a.Formats.Lookup(id)
	if !ok {
		return formats.Resolved{}, NewNotFoundErrorIn("format", id, a.Formats.IDs())
	}

	resolved := formats.Resolve(f, a.T)
	if f.IsCustom() {
		resolved = resolved.WithPrefixes(a.Config.Custom.UserPrefix, a.Config.Custom.AssistantPrefix)
	}
	resolved = resolved.WithPrefixes(a.Args.UserPrefix, a.Args.AssistantPrefix)

	if resolved.UserPrefix == "" {
		return formats.Resolved{}, NewValidationErrorWithExample("user prefix", "",
			fmt.Sprintf("format %q has no user prefix", f.ID), "--user-prefix \"Q:\"")
	}
	if resolved.AssistantPrefix == "" {
		return formats.Resolved{}, NewValidationErrorWithExample("assistant prefix", "",
			fmt.Sprintf("format %q has no assistant prefix", f.ID), "--assistant-prefix \"A:\"")
	}
	return resolved, nil
}

// =============================================================================
// LOADING
// =============================================================================

// loadInput reads and splits the transcript named by the file argument.
func (a *App) loadInput() (*Input, error) {
	if a.Args.File == "" {
		return nil, ErrMissingArgument("file", "chat-gpt-reader print session.txt")
	}

	in := &Input{}
	var (
		all    []model.Turn
		source string
	)

	switch {
	case transcript.IsJSONFile(a.Args.File):
		turns, err := transcript.ReadJSON(a.Args.File)
		if err != nil {
			return nil, err
		}
		all = turns
		source = filepath.Base(a.Args.File)

	default:
		text, err := a.readText()
		if err != nil {
			if errors.Is(err, transcript.ErrInvalidFile) {
				return nil, NewValidationError("file", a.Args.File, a.T("app.upload.invalidFile"))
			}
			return nil, err
		}
		format, err := a.resolveFormat()
		if err != nil {
			return nil, err
		}
		in.Format = format
		all = transcript.Parse(text, format.UserPrefix, format.AssistantPrefix)
		if a.Args.File != stdinName {
			source = filepath.Base(a.Args.File)
		}
	}

	showUser, showAssistant := a.roleToggles()
	in.Total = len(all)
	in.Transcript = model.NewTranscript(a.printTitle(), source)
	for _, turn := range transcript.Filter(all, showUser, showAssistant) {
		in.Append(turn)
	}

	a.Logger.Printf("INPUT_LOADED | file=%s format=%s turns=%d visible=%d",
		a.Args.File, in.Format.ID, in.Total, in.Len())
	return in, nil
}

func (a *App) readText() (string, error) {
	if a.Args.File != stdinName {
		return transcript.ReadText(a.Args.File)
	}
	data, err := io.ReadAll(io.LimitReader(a.Stdin, transcript.MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) > transcript.MaxFileSize {
		return "", fmt.Errorf("stdin: %w", transcript.ErrTooLarge)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// =============================================================================
// VISIBILITY
// =============================================================================

// roleToggles combines the configured toggles with --hide-user and
// --hide-assistant.
func (a *App) roleToggles() (showUser, showAssistant bool) {
	showUser = a.Config.Display.ShowUser && !a.Args.HideUser
	showAssistant = a.Config.Display.ShowAssistant && !a.Args.HideAssistant
	return showUser, showAssistant
}

// visibility builds the header rule for the printed page. --headers and
// --no-headers win over the configured mode. In auto mode headers follow
// the role toggles: they show only while both roles are visible.
func (a *App) visibility() printing.Visibility {
	mode := a.Config.Display.RoleHeaders
	switch {
	case a.Args.NoHeaders:
		mode = config.HeadersNever
	case a.Args.Headers:
		mode = config.HeadersAlways
	}

	switch mode {
	case config.HeadersAlways:
		return printing.RoleAnnotation(true)
	case config.HeadersNever:
		return printing.RoleAnnotation(false)
	default:
		showUser, showAssistant := a.roleToggles()
		return printing.RoleToggles{ShowUser: showUser, ShowAssistant: showAssistant}
	}
}
