// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the chat-gpt-reader command line.
//
// # Commands
//
//   - print: parse a transcript and print it through the browser
//   - preview: render the transcript as Markdown in the terminal
//   - parse: write the parsed turns as JSON, Markdown or HTML
//   - formats: list the chat formats of the registry
//   - config: show, initialize, read and change settings
//   - version, help
//
// # Output
//
// Human-readable output is styled with lipgloss when stdout is a terminal
// and NO_COLOR is unset. With --json, commands that support it write a
// JSONResponse envelope to stdout and keep everything else on stderr.
//
// Handlers return errors; main maps them to exit codes with GetExitCode.
package cli
