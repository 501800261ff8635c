// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n provides the locale catalogs and the label lookup used by
// every user-visible string of the reader.
//
// Catalogs are TOML files embedded in the binary, one per locale, with the
// same nested key tree. Keys are addressed with dots ("app.print.noMessages").
//
// # Usage
//
//	cat := i18n.Load("zh-TW")
//	fmt.Println(cat.T("app.print.noMessages"))
//
// Lookups fall back to English and then to the key itself, so T never
// returns an empty string for a key that is missing everywhere.
package i18n
