// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
//
// A transcript is an ordered list of turns produced by the prefix parser.
// Each turn is attributed to one of two roles and carries its text verbatim.
//
// # Key Types
//
//   - Role: Turn attribution (user, service)
//   - Turn: Single message with role, content and an optional timestamp
//   - Transcript: Ordered turn sequence with a title and source file name
//
// # Usage
//
//	tr := model.NewTranscript("Chat History", "session.txt")
//	tr.Append(model.Turn{Role: model.RoleUser, Content: "Hi"})
//	tr.Append(model.Turn{Role: model.RoleService, Content: "Hello"})
package model
