// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// picker.go - Interactive chat format picker.
package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PoChenKuo/chat-gpt-reader/internal/formats"
	"github.com/PoChenKuo/chat-gpt-reader/internal/util"
)

// ErrPickCanceled is returned when the picker is closed without a choice.
var ErrPickCanceled = errors.New("format selection canceled")

// pickerModel lists the registry's formats and returns the chosen ID.
type pickerModel struct {
	title  string
	items  []formats.Resolved
	cursor int
	chosen string
	quit   bool
	keys   KeyMap
	width  int
}

func newPickerModel(title string, items []formats.Resolved, current string) pickerModel {
	m := pickerModel{
		title: title,
		items: items,
		keys:  DefaultKeyMap(),
		width: DefaultTerminalWidth,
	}
	for i, it := range items {
		if it.ID == current {
			m.cursor = i
			break
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.chosen = m.items[m.cursor].ID
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			m.cursor = len(m.items) - 1
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, it := range m.items {
		if w := util.StringWidth(it.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for i, it := range m.items {
		line := util.PadRight(it.Name, nameWidth) + "  " + it.Description
		line = util.TruncateWidth(line, m.width-4)
		if i == m.cursor {
			b.WriteString(HighlightStyle.Render("> " + line))
		} else {
			b.WriteString("  " + ValueStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Quit)))
	b.WriteString("\n")
	return b.String()
}

// pickFormat runs the picker and returns the chosen format ID.
func (a *App) pickFormat() (string, error) {
	if err := RequiresTTY("pick a format"); err != nil {
		return "", err
	}

	list := a.Formats.List()
	items := make([]formats.Resolved, 0, len(list))
	for _, f := range list {
		items = append(items, formats.Resolve(f, a.T))
	}

	current := a.Args.Format
	if current == "" {
		current = a.Config.DefaultFormat
	}

	p := tea.NewProgram(newPickerModel(a.T("app.config.selectFormat"), items, current),
		tea.WithOutput(a.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", NewCommandError("print", "pick format", "picker failed", err)
	}

	m := final.(pickerModel)
	if m.quit || m.chosen == "" {
		return "", ErrPickCanceled
	}
	a.Logger.Printf("FORMAT_PICKED | id=%s", m.chosen)
	return m.chosen, nil
}
