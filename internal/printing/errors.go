// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTranscript is returned when a request has no turns.
	ErrEmptyTranscript = errors.New("no messages to print")

	// ErrSurfaceUnavailable is returned when no presentation surface could
	// be opened, typically because the host refused to open a window.
	ErrSurfaceUnavailable = errors.New("print surface unavailable")
)

// Error carries one of the sentinel kinds together with the host error
// that caused it. errors.Is matches the kind; errors.Unwrap returns the
// cause.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}
