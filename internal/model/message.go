// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a turn.
type Role string

const (
	RoleUser    Role = "user"
	RoleService Role = "service"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleService
}

// LabelKey returns the catalog key of the role's display label.
// The service role is shown as the assistant.
func (r Role) LabelKey() string {
	switch r {
	case RoleUser:
		return "app.chat.user"
	default:
		return "app.chat.assistant"
	}
}

// ParseRole converts a string into a Role. "assistant" is accepted as an
// alias for the service role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "service", "assistant":
		return RoleService, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one attributed message of a transcript.
// Content is kept exactly as parsed; nothing downstream rewrites it.
type Turn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HasTimestamp reports whether the turn carries a display timestamp.
func (t Turn) HasTimestamp() bool {
	return strings.TrimSpace(t.Timestamp) != ""
}

// Preview returns a truncated single-line preview of the content.
// Uses rune-based truncation to handle Unicode correctly.
func (t Turn) Preview(maxLen int) string {
	content := strings.Join(strings.Fields(t.Content), " ")
	runes := []rune(content)
	if maxLen <= 3 || len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen-3]) + "..."
}
