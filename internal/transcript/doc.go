// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript turns raw chat text into an ordered list of turns.
//
// A chat format supplies two prefixes. Every line that starts with one of
// them opens a new turn for that role; the following lines belong to the
// open turn until the next prefix line. Text before the first prefix line
// is not part of any turn.
//
//	User: Hi
//	Assistant: Hello
//	How can I help?
//
// parses into two turns, the second one spanning two lines.
//
// The package also loads transcripts from disk (plain text, or the JSON
// written by the parse command) and applies the user/assistant visibility
// toggles.
package transcript
