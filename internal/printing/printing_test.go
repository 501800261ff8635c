// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

func TestError_KindAndCause(t *testing.T) {
	cause := errors.New("blocked")
	err := fmt.Errorf("print: %w", &Error{Kind: ErrSurfaceUnavailable, Err: cause})

	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmptyTranscript)
	assert.Equal(t, "print: print surface unavailable: blocked", err.Error())

	bare := &Error{Kind: ErrEmptyTranscript}
	assert.Equal(t, "no messages to print", bare.Error())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting_load", StateAwaitingLoad.String())
	assert.Equal(t, "aborted", StateAborted.String())
	assert.Equal(t, "unknown", State(99).String())

	assert.True(t, StateClosed.Terminal())
	assert.True(t, StateAborted.Terminal())
	assert.False(t, StatePrinting.Terminal())
}

func TestWriterSurface(t *testing.T) {
	var out bytes.Buffer
	s := NewWriterSurface(&out)

	_, err := s.Write([]byte("<html>"))
	require.NoError(t, err)
	assert.Empty(t, out.String(), "page is buffered until finalize")

	select {
	case <-s.Loaded():
		t.Fatal("loaded before finalize")
	default:
	}

	require.NoError(t, s.Finalize())
	assert.Equal(t, "<html>", out.String())
	<-s.Loaded()

	require.NoError(t, s.Print())
	assert.True(t, s.Printed())
	require.NoError(t, s.Close())
	assert.True(t, s.Closed())

	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrSurfaceClosed)
}

func TestWriterFactory_EndToEnd(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(WriterFactory(&out), NotifierFunc(func(string) {
		t.Fatal("unexpected notice")
	}))

	err := r.RenderAndPrint(context.Background(), Request{
		Turns:      []model.Turn{{Role: model.RoleUser, Content: "ping"}},
		Title:      "T",
		Visibility: RoleToggles{ShowUser: true, ShowAssistant: true},
		Labels:     lookup,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<!DOCTYPE html>")
	assert.Contains(t, out.String(), "ping")
}

func TestWriterFactory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var notices []string
	r := NewRenderer(WriterFactory(&bytes.Buffer{}), NotifierFunc(func(m string) {
		notices = append(notices, m)
	}))

	err := r.RenderAndPrint(ctx, Request{Turns: sampleTurns(), Labels: lookup})
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"Popup blocked"}, notices)
}
