// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

func TestParse_SplitsByPrefix(t *testing.T) {
	text := "Exported on 2024-01-01\n\nUser: Hi\nAssistant: Hello\nHow can I help?\n\nUser:   <b>bold</b> & more\n"

	turns := Parse(text, "User:", "Assistant:")

	require.Len(t, turns, 3)
	assert.Equal(t, model.Turn{Role: model.RoleUser, Content: "Hi"}, turns[0])
	assert.Equal(t, model.Turn{Role: model.RoleService, Content: "Hello\nHow can I help?"}, turns[1])
	assert.Equal(t, model.Turn{Role: model.RoleUser, Content: "<b>bold</b> & more"}, turns[2])
}

func TestParse_PrefixOnOwnLine(t *testing.T) {
	text := "你說：\n請幫我翻譯\n\nChatGPT 說：\n好的\n"

	turns := Parse(text, "你說：", "ChatGPT 說：")

	require.Len(t, turns, 2)
	assert.Equal(t, "請幫我翻譯", turns[0].Content)
	assert.Equal(t, model.RoleService, turns[1].Role)
	assert.Equal(t, "好的", turns[1].Content)
}

func TestParse_LongerPrefixWins(t *testing.T) {
	turns := Parse("A: one\nA2: two\n", "A", "A2:")

	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, ": one", turns[0].Content)
	assert.Equal(t, model.RoleService, turns[1].Role)
	assert.Equal(t, "two", turns[1].Content)
}

func TestParse_EdgeCases(t *testing.T) {
	assert.Empty(t, Parse("", "User:", "Assistant:"))
	assert.Empty(t, Parse("User: hi", "", ""), "empty prefixes never match")
	assert.Empty(t, Parse("User:\n\nAssistant:   \n", "User:", "Assistant:"), "empty turns are dropped")

	crlf := Parse("User: a\r\nb\r\nAssistant: c\r\n", "User:", "Assistant:")
	require.Len(t, crlf, 2)
	assert.Equal(t, "a\nb", crlf[0].Content)

	indented := Parse("\ufeff  User: x", "User:", "Assistant:")
	require.Len(t, indented, 1)
	assert.Equal(t, "x", indented[0].Content)
}

func TestFilter(t *testing.T) {
	turns := []model.Turn{
		{Role: model.RoleUser, Content: "1"},
		{Role: model.RoleService, Content: "2"},
		{Role: model.RoleUser, Content: "3"},
	}

	assert.Len(t, Filter(turns, true, true), 3)
	onlyUser := Filter(turns, true, false)
	require.Len(t, onlyUser, 2)
	assert.Equal(t, "1", onlyUser[0].Content)
	assert.Equal(t, "3", onlyUser[1].Content)
	assert.Empty(t, Filter(turns, false, false))
	assert.Len(t, turns, 3, "input must not be modified")
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "chat.TXT")
	require.NoError(t, os.WriteFile(good, []byte("\ufeffUser: hi"), 0644))

	text, err := ReadText(good)
	require.NoError(t, err)
	assert.Equal(t, "User: hi", text)

	_, err = ReadText(filepath.Join(dir, "chat.md"))
	require.ErrorIs(t, err, ErrInvalidFile)

	_, err = ReadText(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	turns, err := DecodeJSON(strings.NewReader(`[{"role":"user","content":"Hi","timestamp":"10:00"},{"role":"assistant","content":"Hello"}]`))
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "10:00", turns[0].Timestamp)
	assert.Equal(t, model.RoleService, turns[1].Role)

	turns, err = DecodeJSON(strings.NewReader(`{"title":"t","turns":[{"role":"service","content":"x"}]}`))
	require.NoError(t, err)
	require.Len(t, turns, 1)

	_, err = DecodeJSON(strings.NewReader(`[{"role":"tool","content":"x"}]`))
	require.Error(t, err)

	_, err = DecodeJSON(strings.NewReader(`not json`))
	require.Error(t, err)
}
