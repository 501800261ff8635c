// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrSurfaceClosed is returned when a closed WriterSurface is used.
var ErrSurfaceClosed = errors.New("surface closed")

// WriterSurface is a Surface that hands the finished page to an io.Writer.
// The page is buffered until Finalize, which also counts as the load. Print
// only records that it was called.
type WriterSurface struct {
	mu      sync.Mutex
	out     io.Writer
	buf     bytes.Buffer
	loaded  chan struct{}
	once    sync.Once
	printed bool
	closed  bool
}

// NewWriterSurface creates a surface writing to out.
func NewWriterSurface(out io.Writer) *WriterSurface {
	return &WriterSurface{
		out:    out,
		loaded: make(chan struct{}),
	}
}

// Write buffers page bytes.
func (s *WriterSurface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSurfaceClosed
	}
	return s.buf.Write(p)
}

// Finalize copies the buffered page to the writer and marks it loaded.
func (s *WriterSurface) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	_, err := s.buf.WriteTo(s.out)
	s.once.Do(func() { close(s.loaded) })
	return err
}

// Loaded is closed by Finalize.
func (s *WriterSurface) Loaded() <-chan struct{} {
	return s.loaded
}

// Print records the call.
func (s *WriterSurface) Print() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	s.printed = true
	return nil
}

// Close marks the surface closed. The writer itself is left open.
func (s *WriterSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.once.Do(func() { close(s.loaded) })
	return nil
}

// Printed reports whether Print was called.
func (s *WriterSurface) Printed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.printed
}

// Closed reports whether Close was called.
func (s *WriterSurface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// WriterFactory opens WriterSurfaces that all write to out.
func WriterFactory(out io.Writer) SurfaceFactory {
	return SurfaceFactoryFunc(func(ctx context.Context) (Surface, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewWriterSurface(out), nil
	})
}
