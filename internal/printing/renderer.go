// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/PoChenKuo/chat-gpt-reader/internal/export"
	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// Label keys for the two user notices.
const (
	KeyNoMessages   = "app.print.noMessages"
	KeyPopupBlocked = "app.print.popupBlocked"
)

// LabelFunc resolves a catalog key to display text. It must return a string
// for every key the renderer asks for.
type LabelFunc func(key string) string

// Request is one print job. Turns are borrowed and never modified.
type Request struct {
	Turns      []model.Turn
	Title      string
	SourceFile string
	Visibility Visibility
	Labels     LabelFunc

	// Lang is written to the page's lang attribute. Empty means "en".
	Lang string
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns print requests into printed pages. It keeps no state
// between calls, so one Renderer may serve concurrent requests; each
// request opens its own surface.
type Renderer struct {
	surfaces SurfaceFactory
	notifier Notifier
	logger   *log.Logger
	onState  func(requestID string, state State)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for lifecycle events. The default discards
// everything.
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStateHook registers fn to be called on every state transition.
func WithStateHook(fn func(requestID string, state State)) Option {
	return func(r *Renderer) {
		r.onState = fn
	}
}

// NewRenderer creates a renderer that prints on surfaces from factory and
// reports notices through notifier.
func NewRenderer(factory SurfaceFactory, notifier Notifier, opts ...Option) *Renderer {
	r := &Renderer{
		surfaces: factory,
		notifier: notifier,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderAndPrint renders req into a printable page and prints it.
//
// With no turns it shows the "no messages" notice and returns
// ErrEmptyTranscript without opening a surface. When no surface can be
// opened it shows the "popup blocked" notice and returns an error matching
// ErrSurfaceUnavailable without building the page. The notice is skipped
// when ctx was canceled while waiting for the surface. Otherwise it writes the
// page, waits for the surface to load it, prints and closes the surface.
// Once a surface was opened it is always closed.
//
// ctx bounds acquiring the surface only; the load wait relies on the
// surface closing its Loaded channel.
func (r *Renderer) RenderAndPrint(ctx context.Context, req Request) error {
	run := &job{r: r, id: uuid.NewString()[:8]}
	labels := req.Labels
	if labels == nil {
		labels = func(key string) string { return key }
	}

	run.enter(StateValidatingInput)
	if len(req.Turns) == 0 {
		r.logger.Printf("PRINT_ABORTED | request=%s reason=empty_transcript", run.id)
		r.notify(labels(KeyNoMessages))
		run.enter(StateAborted)
		return ErrEmptyTranscript
	}

	run.enter(StateAcquiringSurface)
	surface, err := r.open(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// The caller gave up; the surface was not refused.
			r.logger.Printf("PRINT_ABORTED | request=%s reason=canceled err=%v", run.id, err)
		} else {
			r.logger.Printf("PRINT_ABORTED | request=%s reason=surface_unavailable err=%v", run.id, err)
			r.notify(labels(KeyPopupBlocked))
		}
		run.enter(StateAborted)
		return &Error{Kind: ErrSurfaceUnavailable, Err: err}
	}

	run.enter(StateBuildingDocument)
	page := export.BuildPrintDocument(&export.Document{
		Title:       req.Title,
		SourceFile:  req.SourceFile,
		Turns:       req.Turns,
		ShowHeaders: showHeader(req.Visibility),
		Labels:      labels,
		Lang:        req.Lang,
	})
	r.logger.Printf("PRINT_DOCUMENT | request=%s turns=%d bytes=%d headers=%t",
		run.id, len(req.Turns), len(page), showHeader(req.Visibility))

	run.enter(StateWriting)
	if err := writePage(surface, page); err != nil {
		return run.fail(surface, err)
	}

	run.enter(StateAwaitingLoad)
	if loaded := surface.Loaded(); loaded != nil {
		<-loaded
	}

	run.enter(StatePrinting)
	printErr := surface.Print()
	if printErr != nil {
		printErr = fmt.Errorf("print: %w", printErr)
	}
	closeErr := surface.Close()
	if closeErr != nil {
		closeErr = fmt.Errorf("close surface: %w", closeErr)
	}
	run.enter(StateClosed)

	if err := errors.Join(printErr, closeErr); err != nil {
		r.logger.Printf("PRINT_FAILED | request=%s err=%v", run.id, err)
		return err
	}
	r.logger.Printf("PRINT_DONE | request=%s", run.id)
	return nil
}

// open asks the factory for a surface. A factory that returns neither a
// surface nor an error counts as unavailable.
func (r *Renderer) open(ctx context.Context) (Surface, error) {
	if r.surfaces == nil {
		return nil, errors.New("no surface factory configured")
	}
	surface, err := r.surfaces.Open(ctx)
	if err != nil {
		if surface != nil {
			_ = surface.Close()
		}
		return nil, err
	}
	if surface == nil {
		return nil, errors.New("surface factory returned no surface")
	}
	return surface, nil
}

func (r *Renderer) notify(message string) {
	if r.notifier != nil {
		r.notifier.Notify(message)
	}
}

// writePage writes the whole page and finalizes it.
func writePage(surface Surface, page []byte) error {
	n, err := surface.Write(page)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if n != len(page) {
		return fmt.Errorf("write document: %w", io.ErrShortWrite)
	}
	if err := surface.Finalize(); err != nil {
		return fmt.Errorf("finalize document: %w", err)
	}
	return nil
}

// =============================================================================
// JOB
// =============================================================================

// job tracks one RenderAndPrint call.
type job struct {
	r     *Renderer
	id    string
	state State
}

func (j *job) enter(state State) {
	j.state = state
	if j.r.onState != nil {
		j.r.onState(j.id, state)
	}
}

// fail closes the surface after a host error during writing.
func (j *job) fail(surface Surface, err error) error {
	j.r.logger.Printf("PRINT_FAILED | request=%s state=%s err=%v", j.id, j.state, err)
	if closeErr := surface.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close surface: %w", closeErr))
	}
	j.enter(StateClosed)
	return err
}
