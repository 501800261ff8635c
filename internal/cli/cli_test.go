// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/PoChenKuo/chat-gpt-reader/internal/browser"
	"github.com/PoChenKuo/chat-gpt-reader/internal/config"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
	"github.com/PoChenKuo/chat-gpt-reader/internal/transcript"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "no arguments shows help",
			argv:    nil,
			wantCmd: CmdHelp,
		},
		{
			name:    "bare file prints",
			argv:    []string{"session.txt"},
			wantCmd: CmdPrint,
			validate: func(t *testing.T, a Args) {
				if a.File != "session.txt" {
					t.Errorf("File = %q, want session.txt", a.File)
				}
			},
		},
		{
			name:    "print with options",
			argv:    []string{"print", "chat.txt", "-f", "Claude", "--title=Design review", "--hide-user", "--stdout"},
			wantCmd: CmdPrint,
			validate: func(t *testing.T, a Args) {
				if a.File != "chat.txt" {
					t.Errorf("File = %q", a.File)
				}
				if a.Format != "claude" {
					t.Errorf("Format = %q, want claude", a.Format)
				}
				if a.Title != "Design review" {
					t.Errorf("Title = %q", a.Title)
				}
				if !a.HideUser || a.HideAssistant {
					t.Errorf("HideUser=%v HideAssistant=%v", a.HideUser, a.HideAssistant)
				}
				if !a.Stdout {
					t.Error("Stdout should be set")
				}
			},
		},
		{
			name:    "custom prefixes",
			argv:    []string{"print", "notes.txt", "-f", "custom", "--user-prefix", "Q:", "--assistant-prefix=A:"},
			wantCmd: CmdPrint,
			validate: func(t *testing.T, a Args) {
				if a.UserPrefix != "Q:" || a.AssistantPrefix != "A:" {
					t.Errorf("prefixes = %q / %q", a.UserPrefix, a.AssistantPrefix)
				}
			},
		},
		{
			name:    "global flags anywhere",
			argv:    []string{"preview", "-", "--pager", "-v", "--locale=zh-TW"},
			wantCmd: CmdPreview,
			validate: func(t *testing.T, a Args) {
				if a.File != "-" || !a.Pager || !a.Verbose {
					t.Errorf("File=%q Pager=%v Verbose=%v", a.File, a.Pager, a.Verbose)
				}
				if a.Locale != "zh-tw" {
					t.Errorf("Locale = %q, want zh-tw", a.Locale)
				}
			},
		},
		{
			name:    "parse rendition",
			argv:    []string{"parse", "chat.txt", "--as", "Markdown"},
			wantCmd: CmdParse,
			validate: func(t *testing.T, a Args) {
				if a.As != "markdown" {
					t.Errorf("As = %q", a.As)
				}
			},
		},
		{
			name:    "config set joins the value",
			argv:    []string{"config", "set", "print.browser", "firefox", "--new-window"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "set" || a.ConfigKey != "print.browser" {
					t.Errorf("Subcommand=%q ConfigKey=%q", a.Subcommand, a.ConfigKey)
				}
				if a.ConfigVal != "firefox --new-window" {
					t.Errorf("ConfigVal = %q", a.ConfigVal)
				}
			},
		},
		{
			name:    "formats json",
			argv:    []string{"--json", "formats"},
			wantCmd: CmdFormats,
			validate: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON should be set")
				}
			},
		},
		{
			name:    "version flag",
			argv:    []string{"--version"},
			wantCmd: CmdVersion,
		},
		{
			name:    "help flag wins",
			argv:    []string{"print", "x.txt", "--help"},
			wantCmd: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Fatalf("ParseArgs(%v) command = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("file", "x", "bad"), ExitUsageError},
		{"not found", NewNotFoundError("format", "x"), ExitNotFoundError},
		{"missing file", fmt.Errorf("open transcript: %w", os.ErrNotExist), ExitNotFoundError},
		{"invalid file", fmt.Errorf("x.pdf: %w", transcript.ErrInvalidFile), ExitUsageError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "locale", Message: "bad"}}), ExitConfigError},
		{"empty transcript", printing.ErrEmptyTranscript, ExitNothingToPrint},
		{"surface unavailable", &printing.Error{Kind: printing.ErrSurfaceUnavailable, Err: errors.New("no browser")}, ExitSurfaceError},
		{"connect timeout", &printing.Error{Kind: printing.ErrSurfaceUnavailable, Err: browser.ErrNotConnected}, ExitTimeoutError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationErrorWithExample("user prefix", "", "missing", "--user-prefix Q:")
	want := "invalid user prefix: missing\nExample: --user-prefix Q:"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
