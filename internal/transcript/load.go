// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// MaxFileSize bounds the size of a transcript file read from disk.
const MaxFileSize = 16 << 20

var (
	// ErrInvalidFile is returned for files that are not plain text transcripts.
	ErrInvalidFile = errors.New("not a text file (.txt or .text)")
	// ErrTooLarge is returned for files over MaxFileSize.
	ErrTooLarge = errors.New("transcript file too large")
)

// IsTextFile reports whether path has one of the accepted text extensions.
func IsTextFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return true
	default:
		return false
	}
}

// IsJSONFile reports whether path names a JSON turn list.
func IsJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// ReadText reads a plain text transcript.
func ReadText(path string) (string, error) {
	if !IsTextFile(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidFile)
	}
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), bom), nil
}

// ReadJSON reads a JSON turn list from path. See DecodeJSON.
func ReadJSON(path string) ([]model.Turn, error) {
	data, err := readLimited(path)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(strings.NewReader(string(data)))
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrTooLarge)
	}
	return data, nil
}

// jsonTurn accepts "assistant" as well as "service" for the role.
type jsonTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// DecodeJSON reads turns from either a bare JSON array of turns or an
// object with a "turns" array (the shape the parse command writes).
func DecodeJSON(r io.Reader) ([]model.Turn, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode transcript JSON: %w", err)
	}

	var items []jsonTurn
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode transcript JSON: %w", err)
		}
	} else {
		var wrapper struct {
			Turns []jsonTurn `json:"turns"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("decode transcript JSON: %w", err)
		}
		items = wrapper.Turns
	}

	turns := make([]model.Turn, 0, len(items))
	for i, it := range items {
		role, err := model.ParseRole(it.Role)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		turns = append(turns, model.Turn{Role: role, Content: it.Content, Timestamp: it.Timestamp})
	}
	return turns, nil
}
