// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package printing

// Visibility decides whether per-turn headers (role label and timestamp)
// are rendered. The answer must not depend on any particular turn.
type Visibility interface {
	ShowHeader() bool
}

// RoleAnnotation is the single-flag setting: headers on or off.
type RoleAnnotation bool

// ShowHeader reports the flag.
func (a RoleAnnotation) ShowHeader() bool {
	return bool(a)
}

// RoleToggles mirrors the user/assistant visibility switches of the
// reader. Headers are rendered only while both switches are on; with one
// role hidden the page lists the remaining turns without role lines.
type RoleToggles struct {
	ShowUser      bool
	ShowAssistant bool
}

// ShowHeader reports whether both roles are visible.
func (v RoleToggles) ShowHeader() bool {
	return v.ShowUser && v.ShowAssistant
}

// showHeader treats a missing setting as both roles visible.
func showHeader(v Visibility) bool {
	if v == nil {
		return RoleToggles{ShowUser: true, ShowAssistant: true}.ShowHeader()
	}
	return v.ShowHeader()
}
