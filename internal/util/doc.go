// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the reader's packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: Display-width aware truncation (CJK counts as two columns)
//   - PadRight: Pad to a display width for aligned terminal tables
//   - StringWidth: Display width of a string
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Align localized names in a table
//	cell := util.PadRight(util.TruncateWidth(name, 24), 24)
//
//	// Write the config file atomically
//	err := util.AtomicWriteFile(path, data, 0600)
package util
