// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package formats holds the registry of named chat formats.
//
// A chat format is a pair of role prefixes ("User:" / "Assistant:") used to
// split an uploaded text file into turns. The registry only stores label
// keys; prefixes and names are resolved through the locale catalogs, so the
// same registry serves every language.
//
// The registry is configuration, not code: the built-in list is decoded from
// an embedded TOML file and a replacement list can be loaded from TOML or
// YAML at runtime.
//
// # Usage
//
//	reg := formats.Default()
//	f, ok := reg.Lookup("chatgpt-default")
//	r := formats.Resolve(f, catalog.T)
//	turns := transcript.Parse(text, r.UserPrefix, r.AssistantPrefix)
package formats
