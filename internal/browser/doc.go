// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package browser provides a print surface backed by the user's web browser.
//
// Each surface runs its own HTTP server on a loopback port and opens a
// small shell page in the browser. The shell connects back over a
// WebSocket, loads the finished document into an iframe, reports when it
// has loaded, runs the browser's print dialog on request and closes when
// told to.
//
// # Protocol
//
// Server to page:
//
//	{"type":"document","src":"/p/<id>/document"}
//	{"type":"print"}
//	{"type":"close"}
//
// Page to server:
//
//	{"type":"loaded"}
//	{"type":"printed"}
//
// A browser that never opens the shell, or never connects within the
// acquire timeout, makes Open fail; the renderer reports that as a blocked
// popup. Loaded is closed when the page reports it, when the page goes
// away, or when the load timeout elapses, whichever happens first.
package browser
