// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

// State is a step of a single RenderAndPrint call. A call moves forward
// through the states once and never returns to an earlier one.
type State int

const (
	StateIdle State = iota
	StateValidatingInput
	StateAcquiringSurface
	StateBuildingDocument
	StateWriting
	StateAwaitingLoad
	StatePrinting
	StateClosed
	StateAborted
)

var stateNames = [...]string{
	StateIdle:             "idle",
	StateValidatingInput:  "validating_input",
	StateAcquiringSurface: "acquiring_surface",
	StateBuildingDocument: "building_document",
	StateWriting:          "writing",
	StateAwaitingLoad:     "awaiting_load",
	StatePrinting:         "printing",
	StateClosed:           "closed",
	StateAborted:          "aborted",
}

// String returns the state's log name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateAborted
}
