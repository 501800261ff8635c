// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// chat-gpt-reader.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - DisplayConfig: Which roles are shown and how turns are labeled
//   - PrintConfig: Browser surface settings (host, timeouts, title)
//   - CustomConfig: Prefixes for the custom chat format
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (CHATREADER_*)
//   - ~/.chat-gpt-reader/config.toml
//   - ~/.chat-gpt-reader/config.json
//   - Built-in defaults
//
// The directory can be moved with CHATREADER_HOME.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	acquire := cfg.Print.AcquireTimeout()
package config
