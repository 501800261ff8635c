// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
)

// Message types exchanged with the shell page.
const (
	msgDocument = "document"
	msgLoaded   = "loaded"
	msgPrint    = "print"
	msgPrinted  = "printed"
	msgClose    = "close"
)

type message struct {
	Type string `json:"type"`
	Src  string `json:"src,omitempty"`
}

// Surface is a single browser tab driven over a WebSocket.
type Surface struct {
	id       string
	cfg      Config
	logger   *log.Logger
	listener net.Listener
	server   *http.Server
	group    *errgroup.Group
	upgrader websocket.Upgrader

	connected chan struct{}
	loaded    chan struct{}
	printed   chan struct{}
	gone      chan struct{}

	connectOnce sync.Once
	loadOnce    sync.Once
	printOnce   sync.Once
	goneOnce    sync.Once
	closeOnce   sync.Once
	closeErr    error

	// writeMu keeps WebSocket writes single-threaded.
	writeMu sync.Mutex

	mu        sync.Mutex
	conn      *websocket.Conn
	page      bytes.Buffer
	finalized bool
	closed    bool
	loadTimer *time.Timer
}

var _ printing.Surface = (*Surface)(nil)

func newSurface(cfg Config) (*Surface, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, "0"))
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &Surface{
		id:        uuid.NewString(),
		cfg:       cfg,
		logger:    cfg.Logger,
		listener:  listener,
		group:     &errgroup.Group{},
		connected: make(chan struct{}),
		loaded:    make(chan struct{}),
		printed:   make(chan struct{}),
		gone:      make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     sameOrigin,
	}
	s.server = &http.Server{
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.group.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	return s, nil
}

// ID returns the surface's unique id.
func (s *Surface) ID() string {
	return s.id
}

// URL returns the shell page address.
func (s *Surface) URL() string {
	return "http://" + s.listener.Addr().String() + s.basePath() + "/"
}

func (s *Surface) basePath() string {
	return "/p/" + s.id
}

// =============================================================================
// printing.Surface
// =============================================================================

// Write appends to the document. Writes after Finalize fail.
func (s *Surface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.finalized {
		return 0, errors.New("document already finalized")
	}
	return s.page.Write(p)
}

// Finalize freezes the document and tells the page to load it. The load
// timeout starts here.
func (s *Surface) Finalize() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.finalized {
		s.mu.Unlock()
		return nil
	}
	s.finalized = true
	size := s.page.Len()
	s.loadTimer = time.AfterFunc(s.cfg.LoadTimeout, func() { s.markLoaded("timeout") })
	s.mu.Unlock()

	s.logger.Printf("SURFACE_DOCUMENT | id=%s bytes=%d", s.id, size)
	if err := s.send(message{Type: msgDocument, Src: s.basePath() + "/document"}); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// Loaded is closed once the page reports the document loaded, the page
// disconnects, or the load timeout elapses.
func (s *Surface) Loaded() <-chan struct{} {
	return s.loaded
}

// Print opens the browser's print dialog and waits until the page reports
// that it has closed.
func (s *Surface) Print() error {
	if err := s.send(message{Type: msgPrint}); err != nil {
		return fmt.Errorf("send print: %w", err)
	}

	timer := time.NewTimer(s.cfg.PrintTimeout)
	defer timer.Stop()

	select {
	case <-s.printed:
		return nil
	case <-s.gone:
		select {
		case <-s.printed:
			return nil
		default:
			return ErrDisconnected
		}
	case <-timer.C:
		return fmt.Errorf("print not confirmed within %s", s.cfg.PrintTimeout)
	}
}

// Close tells the page to close, then stops the server and waits for its
// goroutines. It is safe to call more than once.
func (s *Surface) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.shutdown()
	})
	return s.closeErr
}

func (s *Surface) shutdown() error {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	if s.loadTimer != nil {
		s.loadTimer.Stop()
	}
	s.mu.Unlock()

	if conn != nil {
		_ = s.send(message{Type: msgClose})
		s.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		_ = conn.Close()
	}
	s.markGone()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := s.server.Shutdown(ctx)
	waitErr := s.group.Wait()

	s.logger.Printf("SURFACE_CLOSED | id=%s", s.id)
	return errors.Join(shutdownErr, waitErr)
}

// =============================================================================
// CONNECTION
// =============================================================================

// attach adopts the first WebSocket connection and starts reading from it.
func (s *Surface) attach(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil || s.closed {
		return false
	}
	s.conn = conn
	conn.SetReadLimit(64 << 10)
	// Registered under mu so Close never waits on a group that is still growing.
	s.group.Go(func() error {
		s.readLoop(conn)
		return nil
	})
	s.connectOnce.Do(func() { close(s.connected) })
	return true
}

func (s *Surface) readLoop(conn *websocket.Conn) {
	defer s.markGone()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Printf("SURFACE_BAD_MESSAGE | id=%s err=%v", s.id, err)
			continue
		}

		switch msg.Type {
		case msgLoaded:
			s.markLoaded("page")
		case msgPrinted:
			s.printOnce.Do(func() { close(s.printed) })
		default:
			s.logger.Printf("SURFACE_BAD_MESSAGE | id=%s type=%q", s.id, msg.Type)
		}
	}
}

func (s *Surface) send(msg message) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrDisconnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

func (s *Surface) markLoaded(reason string) {
	s.loadOnce.Do(func() {
		s.logger.Printf("SURFACE_LOADED | id=%s reason=%s", s.id, reason)
		close(s.loaded)
	})
}

// markGone records that the page is unreachable. A page that is gone will
// never load, so the load wait ends too.
func (s *Surface) markGone() {
	s.goneOnce.Do(func() { close(s.gone) })
	s.markLoaded("disconnect")
}
