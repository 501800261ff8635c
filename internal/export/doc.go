// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders a transcript into its output formats.
//
// # Key Types
//
//   - Document: Transcript plus presentation settings and label lookup
//   - Exporter: Common interface of all renditions
//   - HTMLExporter: Standalone printable HTML page
//   - MarkdownExporter: Markdown for the terminal preview
//   - JSONExporter: Parsed turns as JSON
//
// # Verbatim Content
//
// Turn content, the title and the source file name are written into the
// HTML page as given, without escaping. Callers that print untrusted text
// must sanitize it first; the page is meant to reproduce the transcript
// exactly, markup included.
//
// # Usage
//
//	page := export.BuildPrintDocument(&export.Document{
//	    Title:       "Chat History",
//	    SourceFile:  "session.txt",
//	    Turns:       turns,
//	    ShowHeaders: true,
//	    Labels:      catalog.T,
//	})
package export
