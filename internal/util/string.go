// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// TruncateWidth truncates s so that it occupies at most maxWidth terminal
// columns, appending "..." when something was cut. Double-width runes are
// never split.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// PadRight pads s with spaces up to width columns. Strings that are already
// wider are returned unchanged.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// StringWidth returns the number of terminal columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FirstLine returns the first non-blank line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
