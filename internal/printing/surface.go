// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

import (
	"context"
	"io"
)

// Surface is a single-use print target. The renderer writes the page with
// Write, calls Finalize once the page is complete, waits for Loaded, then
// calls Print and Close.
type Surface interface {
	io.Writer

	// Finalize marks the page as complete and hands it to the host.
	Finalize() error

	// Loaded is closed once the host has finished loading the page. An
	// implementation must close it eventually, also when the host goes
	// away, so that the renderer never waits forever. A nil channel counts
	// as already loaded.
	Loaded() <-chan struct{}

	// Print triggers the host's print action.
	Print() error

	// Close releases the surface.
	Close() error
}

// SurfaceFactory opens a new, blank surface per request.
type SurfaceFactory interface {
	Open(ctx context.Context) (Surface, error)
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(ctx context.Context) (Surface, error)

// Open calls f(ctx).
func (f SurfaceFactoryFunc) Open(ctx context.Context) (Surface, error) {
	return f(ctx)
}

// Notifier shows a message to the user and returns once it has been
// acknowledged.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) {
	f(message)
}
