// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package printing renders a parsed transcript into a printable page and
// drives the print flow on a presentation surface.
//
// The renderer does not know where the page ends up. It asks a
// SurfaceFactory for a fresh surface (a browser tab, or a plain writer in
// tests and dry runs), writes the page, waits once for the surface to report
// that the page has loaded, prints, and closes the surface.
//
// # Outcomes
//
// Every call ends in exactly one of four ways:
//
//   - ErrEmptyTranscript: no turns; the "no messages to print" notice is
//     shown and no surface is opened.
//   - ErrSurfaceUnavailable: the factory could not open a surface; the
//     "popup blocked" notice is shown and no page is built. A canceled
//     context ends the same way without the notice.
//   - a host error: the surface was opened but writing, printing or
//     closing it failed. The wrapped error is returned as is and the
//     surface is still closed.
//   - printed: the page was written, printed and the surface closed.
//
// Both notices go through the Notifier; neither is retried. A caller may
// simply issue a new request later.
//
// # Per-turn Headers
//
// Whether a turn shows its role line is decided by the Visibility value
// alone and is the same for every turn of a request.
//
// # Usage
//
//	r := printing.NewRenderer(browser.NewFactory(cfg), notifier)
//	err := r.RenderAndPrint(ctx, printing.Request{
//	    Turns:      turns,
//	    Title:      "Chat History",
//	    SourceFile: "session.txt",
//	    Visibility: printing.RoleToggles{ShowUser: true, ShowAssistant: true},
//	    Labels:     catalog.T,
//	})
package printing
