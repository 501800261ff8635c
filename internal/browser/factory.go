// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
)

// Defaults for Config fields left zero.
const (
	DefaultHost           = "127.0.0.1"
	DefaultAcquireTimeout = 15 * time.Second
	DefaultLoadTimeout    = 30 * time.Second
	DefaultPrintTimeout   = 10 * time.Minute
	DefaultTitle          = "chat-gpt-reader"

	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

var (
	// ErrNotConnected is returned by Open when the page never connects.
	ErrNotConnected = errors.New("browser did not connect")

	// ErrDisconnected is returned when the page goes away mid-job.
	ErrDisconnected = errors.New("browser disconnected")

	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface closed")
)

// Config controls browser surfaces.
type Config struct {
	// Host is the loopback address the surface server binds to.
	Host string

	// AcquireTimeout bounds the wait for the page to connect.
	AcquireTimeout time.Duration

	// LoadTimeout bounds the wait for the document to load.
	LoadTimeout time.Duration

	// PrintTimeout bounds the wait for the print dialog to finish.
	PrintTimeout time.Duration

	// Title is shown in the shell page's tab.
	Title string

	Logger *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = DefaultAcquireTimeout
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.PrintTimeout <= 0 {
		c.PrintTimeout = DefaultPrintTimeout
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return c
}

// Factory opens a browser surface per print request.
type Factory struct {
	cfg      Config
	launcher Launcher
}

var _ printing.SurfaceFactory = (*Factory)(nil)

// NewFactory creates a factory. A nil launcher uses OSLauncher.
func NewFactory(cfg Config, launcher Launcher) *Factory {
	if launcher == nil {
		launcher = OSLauncher{}
	}
	return &Factory{cfg: cfg.withDefaults(), launcher: launcher}
}

// Open starts a surface server, launches the browser on its shell page and
// waits for the page to connect.
func (f *Factory) Open(ctx context.Context) (printing.Surface, error) {
	s, err := newSurface(f.cfg)
	if err != nil {
		return nil, err
	}
	f.cfg.Logger.Printf("SURFACE_START | id=%s url=%s", s.id, s.URL())

	if err := f.launcher.Launch(s.URL()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	timer := time.NewTimer(f.cfg.AcquireTimeout)
	defer timer.Stop()

	select {
	case <-s.connected:
		f.cfg.Logger.Printf("SURFACE_CONNECTED | id=%s", s.id)
		return s, nil
	case <-ctx.Done():
		_ = s.Close()
		return nil, ctx.Err()
	case <-timer.C:
		_ = s.Close()
		return nil, fmt.Errorf("%w within %s", ErrNotConnected, f.cfg.AcquireTimeout)
	}
}
