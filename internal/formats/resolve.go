// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package formats

// Resolved is a format with its label keys looked up for one locale.
type Resolved struct {
	ID              string
	Name            string
	Description     string
	UserPrefix      string
	AssistantPrefix string
}

// Resolve looks up the format's label keys through lookup.
func Resolve(f Format, lookup func(key string) string) Resolved {
	return Resolved{
		ID:              f.ID,
		Name:            lookup(f.NameKey),
		Description:     lookup(f.DescriptionKey),
		UserPrefix:      lookup(f.UserPrefixKey),
		AssistantPrefix: lookup(f.AssistantPrefixKey),
	}
}

// WithPrefixes returns r with its prefixes replaced by the non-empty
// arguments. Used for the custom format and for command-line overrides.
func (r Resolved) WithPrefixes(userPrefix, assistantPrefix string) Resolved {
	if userPrefix != "" {
		r.UserPrefix = userPrefix
	}
	if assistantPrefix != "" {
		r.AssistantPrefix = assistantPrefix
	}
	return r
}
