// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the full, ordered turn sequence of one chat session.
// Insertion order is conversational order.
type Transcript struct {
	Title      string `json:"title"`
	SourceFile string `json:"source_file,omitempty"`
	Turns      []Turn `json:"turns"`
}

// NewTranscript creates an empty transcript.
func NewTranscript(title, sourceFile string) *Transcript {
	return &Transcript{
		Title:      title,
		SourceFile: sourceFile,
		Turns:      []Turn{},
	}
}

// Append adds a turn to the end of the transcript.
func (t *Transcript) Append(turn Turn) {
	t.Turns = append(t.Turns, turn)
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Turns)
}

// IsEmpty returns true if the transcript has no turns.
func (t *Transcript) IsEmpty() bool {
	return t.Len() == 0
}

// CountByRole returns the number of turns attributed to role.
func (t *Transcript) CountByRole(role Role) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, turn := range t.Turns {
		if turn.Role == role {
			n++
		}
	}
	return n
}
