// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package formats

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// CustomID identifies the format whose prefixes are typed by the user
// instead of coming from the locale catalog.
const CustomID = "custom"

// DefaultID is the format selected when nothing else is configured.
const DefaultID = "chatgpt-default"

//go:embed formats.toml
var builtinCatalog []byte

// ErrDuplicateID is returned when two formats share an identifier.
var ErrDuplicateID = errors.New("duplicate format id")

// Format describes one chat format. ID is the only field used for
// identity; the four keys are opaque to the registry.
type Format struct {
	ID                 string `toml:"id" yaml:"id" json:"id"`
	NameKey            string `toml:"name_key" yaml:"name_key" json:"name_key"`
	UserPrefixKey      string `toml:"user_prefix_key" yaml:"user_prefix_key" json:"user_prefix_key"`
	AssistantPrefixKey string `toml:"assistant_prefix_key" yaml:"assistant_prefix_key" json:"assistant_prefix_key"`
	DescriptionKey     string `toml:"description_key" yaml:"description_key" json:"description_key"`
}

// IsCustom reports whether the format takes its prefixes from user input.
func (f Format) IsCustom() bool {
	return f.ID == CustomID
}

// catalogFile is the on-disk shape of a format catalog.
type catalogFile struct {
	Formats []Format `toml:"formats" yaml:"formats"`
}

// Registry is an ordered, read-only collection of formats.
type Registry struct {
	formats []Format
	index   map[string]int
}

// New builds a registry from formats in the given order.
// Empty and duplicate identifiers are rejected.
func New(formats ...Format) (*Registry, error) {
	r := &Registry{
		formats: make([]Format, 0, len(formats)),
		index:   make(map[string]int, len(formats)),
	}
	for i, f := range formats {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" {
			return nil, fmt.Errorf("format %d: empty id", i)
		}
		if _, exists := r.index[f.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
		}
		r.index[f.ID] = len(r.formats)
		r.formats = append(r.formats, f)
	}
	return r, nil
}

// Default returns the registry decoded from the embedded catalog.
// It panics if the embedded catalog is malformed, which is a build defect.
func Default() *Registry {
	r, err := decodeTOML(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("formats: embedded catalog: %v", err))
	}
	return r
}

// LoadFile reads a catalog from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read format catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".toml", "":
		return decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported format catalog extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

func decodeTOML(data []byte) (*Registry, error) {
	var file catalogFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("decode TOML format catalog: %w", err)
	}
	return New(file.Formats...)
}

func decodeYAML(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode YAML format catalog: %w", err)
	}
	return New(file.Formats...)
}

// List returns the formats in registration order. The slice is a copy.
func (r *Registry) List() []Format {
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// Lookup returns the format with the given id.
func (r *Registry) Lookup(id string) (Format, bool) {
	i, ok := r.index[strings.TrimSpace(id)]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	return len(r.formats)
}

// IDs returns the identifiers in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.formats))
	for i, f := range r.formats {
		ids[i] = f.ID
	}
	return ids
}

// Only returns a new registry restricted to ids, keeping registry order.
// Unknown ids are ignored.
func (r *Registry) Only(ids ...string) *Registry {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var selected []Format
	for _, f := range r.formats {
		if keep[f.ID] {
			selected = append(selected, f)
		}
	}
	out, _ := New(selected...)
	return out
}
