// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

var testLabels = map[string]string{
	KeySourceFile: "Source File",
	KeyUser:       "👤 User",
	KeyAssistant:  "🤖 Assistant",
}

func labelFunc(key string) string {
	return testLabels[key]
}

func sampleDoc() *Document {
	return &Document{
		Title:      "Chat History",
		SourceFile: "session.txt",
		Turns: []model.Turn{
			{Role: model.RoleUser, Content: "Hi"},
			{Role: model.RoleService, Content: "Hello", Timestamp: "10:02"},
		},
		ShowHeaders: true,
		Labels:      labelFunc,
	}
}

// headerBlock returns the text of the page's header div.
func headerBlock(t *testing.T, page string) string {
	t.Helper()
	start := strings.Index(page, "<div class=\"header\">")
	require.GreaterOrEqual(t, start, 0, "header block missing")
	end := strings.Index(page[start:], "</div>")
	require.Greater(t, end, 0)
	return page[start : start+end]
}

// =============================================================================
// HTML
// =============================================================================

func TestBuildPrintDocument_Structure(t *testing.T) {
	page := string(BuildPrintDocument(sampleDoc()))

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "</html>")
	assert.Contains(t, page, "<title>Chat History</title>")
	assert.Equal(t, 2, strings.Count(page, "<div class=\"message "))

	userAt := strings.Index(page, "message-content\">Hi</div>")
	serviceAt := strings.Index(page, "message-content\">Hello</div>")
	require.Greater(t, userAt, 0)
	require.Greater(t, serviceAt, userAt, "turns must keep their order")
}

func TestBuildPrintDocument_HeaderRoundTrip(t *testing.T) {
	doc := sampleDoc()
	doc.Title = "Q&A <draft> \"v2\""
	doc.SourceFile = "my <chat>.txt"

	header := headerBlock(t, string(BuildPrintDocument(doc)))

	assert.Equal(t, 1, strings.Count(header, doc.Title))
	assert.Equal(t, 1, strings.Count(header, doc.SourceFile))
	assert.Contains(t, header, "Source File: my <chat>.txt")
}

func TestBuildPrintDocument_NoSourceFileLine(t *testing.T) {
	doc := sampleDoc()
	doc.SourceFile = ""

	page := string(BuildPrintDocument(doc))

	assert.NotContains(t, page, "class=\"file-info\"")
	assert.NotContains(t, page, "Source File")
}

func TestBuildPrintDocument_ContentIsVerbatim(t *testing.T) {
	doc := sampleDoc()
	doc.Turns = []model.Turn{{Role: model.RoleUser, Content: "<script>x()</script> & `code`\n\nline"}}

	page := string(BuildPrintDocument(doc))

	assert.Contains(t, page, "<script>x()</script> & `code`\n\nline")
	assert.NotContains(t, page, "&lt;script")
}

func TestBuildPrintDocument_Headers(t *testing.T) {
	doc := sampleDoc()

	page := string(BuildPrintDocument(doc))
	assert.Equal(t, 2, strings.Count(page, "class=\"message-header\""))
	assert.Contains(t, page, "<span class=\"message-role\">👤 User</span>")
	assert.Contains(t, page, "<span class=\"message-role\">🤖 Assistant</span>")
	assert.Contains(t, page, "<span class=\"message-time\">10:02</span>")
	assert.Equal(t, 1, strings.Count(page, "message-time\">"), "only turns with a timestamp show one")

	doc.ShowHeaders = false
	page = string(BuildPrintDocument(doc))
	assert.NotContains(t, page, "class=\"message-header\"")
	assert.NotContains(t, page, "👤 User")
	assert.Equal(t, 2, strings.Count(page, "<div class=\"message "))
}

func TestBuildPrintDocument_DoesNotMutateTurns(t *testing.T) {
	doc := sampleDoc()
	before := append([]model.Turn(nil), doc.Turns...)

	_ = BuildPrintDocument(doc)

	assert.Equal(t, before, doc.Turns)
}

func TestHTMLExporter_RejectsEmpty(t *testing.T) {
	_, err := NewHTMLExporter().Export(&Document{Title: "x"})
	require.Error(t, err)
	_, err = NewHTMLExporter().Export(nil)
	require.Error(t, err)
}

// =============================================================================
// MARKDOWN / JSON
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	doc := sampleDoc()
	doc.Title = "Chat #1"

	out, err := NewMarkdownExporter().Export(doc)
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Chat \\#1\n"))
	assert.Contains(t, md, "*Source File: session.txt*")
	assert.Contains(t, md, "### 👤 User\n\nHi")
	assert.Contains(t, md, "### 🤖 Assistant <sub>10:02</sub>\n\nHello")
	assert.Equal(t, 1, strings.Count(md, "---\n"))

	doc.ShowHeaders = false
	out, err = NewMarkdownExporter().Export(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "###")
}

func TestJSONExporter_ReadableShape(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleDoc())
	require.NoError(t, err)

	var tr model.Transcript
	require.NoError(t, json.Unmarshal(out, &tr))
	assert.Equal(t, "Chat History", tr.Title)
	require.Len(t, tr.Turns, 2)
	assert.Equal(t, model.RoleService, tr.Turns[1].Role)
}

func TestForName(t *testing.T) {
	for name, ext := range map[string]string{"md": ".md", "markdown": ".md", "HTML": ".html", "json": ".json"} {
		e, err := ForName(name)
		require.NoError(t, err, name)
		assert.Equal(t, ext, e.FileExtension())
	}
	_, err := ForName("pdf")
	require.Error(t, err)
}
