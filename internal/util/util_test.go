// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("locale = \"en\"\n"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "locale = \"en\"\n", string(data))
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.json")

	require.NoError(t, AtomicWriteFile(path, []byte("{}"), 0644))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestAtomicWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("first"), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be renamed or removed")
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "Claude", width: 10, want: "Claude"},
		{name: "ascii cut", in: "ChatGPT Default", width: 10, want: "ChatGPT..."},
		{name: "zero width", in: "abc", width: 0, want: ""},
		{name: "tiny width", in: "abcdef", width: 2, want: "ab"},
		{name: "cjk cut", in: "自訂格式說明", width: 7, want: "自訂..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWidth(tc.in, tc.width)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, StringWidth(got), tc.width)
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "自訂", PadRight("自訂", 4))
	assert.Equal(t, "自訂  ", PadRight("自訂", 6))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "hello", FirstLine("\n\n  hello  \nworld"))
	assert.Equal(t, "", FirstLine("   \n\t"))
}
