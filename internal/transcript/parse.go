// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// bom is stripped from the start of lines copied out of some editors.
const bom = "\ufeff"

// Parse splits text into turns using the two role prefixes.
// An empty prefix never matches. When a line matches both prefixes the
// longer prefix wins. Content keeps its inner formatting; only the blank
// lines around a turn and the space right after the prefix are removed.
// Turns that end up empty are dropped.
func Parse(text, userPrefix, assistantPrefix string) []model.Turn {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	turns := []model.Turn{}
	var (
		open  bool
		role  model.Role
		lines []string
	)

	flush := func() {
		if !open {
			return
		}
		if content := trimBlankLines(lines); content != "" {
			turns = append(turns, model.Turn{Role: role, Content: content})
		}
		open = false
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		candidate := strings.TrimLeft(strings.TrimPrefix(line, bom), " \t")
		if r, rest, ok := matchPrefix(candidate, userPrefix, assistantPrefix); ok {
			flush()
			open = true
			role = r
			lines = []string{strings.TrimLeft(rest, " \t")}
			continue
		}
		if open {
			lines = append(lines, line)
		}
	}
	flush()

	return turns
}

func matchPrefix(line, userPrefix, assistantPrefix string) (model.Role, string, bool) {
	userMatch := userPrefix != "" && strings.HasPrefix(line, userPrefix)
	assistantMatch := assistantPrefix != "" && strings.HasPrefix(line, assistantPrefix)

	switch {
	case userMatch && assistantMatch:
		if len(assistantPrefix) > len(userPrefix) {
			return model.RoleService, line[len(assistantPrefix):], true
		}
		return model.RoleUser, line[len(userPrefix):], true
	case userMatch:
		return model.RoleUser, line[len(userPrefix):], true
	case assistantMatch:
		return model.RoleService, line[len(assistantPrefix):], true
	default:
		return "", "", false
	}
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// Filter returns the turns whose role is visible, in their original order.
// The input slice is not modified.
func Filter(turns []model.Turn, showUser, showAssistant bool) []model.Turn {
	out := make([]model.Turn, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case model.RoleUser:
			if showUser {
				out = append(out, t)
			}
		case model.RoleService:
			if showAssistant {
				out = append(out, t)
			}
		}
	}
	return out
}
