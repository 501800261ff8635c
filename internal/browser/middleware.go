// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"bufio"
	"errors"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"time"
)

// statusWriter wraps http.ResponseWriter to capture the status code. It
// passes Hijack through so the WebSocket upgrade still works.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code before writing it.
func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker.
func (sw *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := sw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	sw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

// loggingMiddleware logs one line per request.
//
// Log format: "SURFACE_HTTP | id=1f2e3d4c GET /p/1f2e.../document | 200 | 0.001s"
func loggingMiddleware(logger *log.Logger, id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusWriter(w)

			next.ServeHTTP(wrapped, r)

			logger.Printf("SURFACE_HTTP | id=%s %s %s | %d | %.3fs",
				id, r.Method, r.URL.Path, wrapped.statusCode, time.Since(start).Seconds())
		})
	}
}

// securityHeaders keeps the pages private to the loopback origin. The
// document is framed by the shell page, so framing stays same-origin.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// recoverer turns a handler panic into a 500 and a log line.
func recoverer(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Printf("PANIC_RECOVERED | method=%s path=%s error=%v\n%s",
						r.Method, r.URL.Path, err, debug.Stack())
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
