// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// router serves the shell page, the document and the WebSocket under
// /p/{id}. Requests for any other id are not found.
func (s *Surface) router() http.Handler {
	r := chi.NewRouter()
	r.Use(recoverer(s.logger), loggingMiddleware(s.logger, s.id), securityHeaders)
	r.Route("/p/{id}", func(r chi.Router) {
		r.Use(s.requireID)
		r.Get("/", s.handleShell)
		r.Get("/document", s.handleDocument)
		r.Get("/ws", s.handleSocket)
	})
	return r
}

func (s *Surface) requireID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != s.id {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Surface) handleShell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, shellPage(s.cfg.Title, s.basePath()))
}

func (s *Surface) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if !s.finalized {
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	// Frozen after Finalize.
	page := s.page.Bytes()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Surface) handleSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	taken := s.conn != nil || s.closed
	s.mu.Unlock()
	if taken {
		http.Error(w, "surface already connected", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if !s.attach(conn) {
		_ = conn.Close()
	}
}

// sameOrigin only accepts browser connections from the shell page itself.
// Clients that send no Origin are allowed.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
