// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// pager.go - Scrollable preview.
package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel shows rendered content in a viewport with a one-line status
// bar.
type pagerModel struct {
	viewport viewport.Model
	content  string
	status   string
	keys     KeyMap
	ready    bool
}

func newPagerModel(content, status string) pagerModel {
	return pagerModel{
		content: content,
		status:  status,
		keys:    DefaultKeyMap(),
	}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 1 // status bar
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.Style = lipgloss.NewStyle()
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if !m.ready {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
		case key.Matches(msg, m.keys.Home):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.End):
			m.viewport.GotoBottom()
		}
		return m, nil
	}
	return m, nil
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	bar := fmt.Sprintf("%s  %3.0f%%  %s", m.status, m.viewport.ScrollPercent()*100,
		helpLine(m.keys.Down, m.keys.Up, m.keys.Quit))
	return m.viewport.View() + "\n" + DimStyle.Render(bar)
}

func runPager(app *App, in *Input, rendered string) error {
	status := fmt.Sprintf("%d %s", in.Len(), app.T("app.chat.messages"))
	if in.SourceFile != "" {
		status = in.SourceFile + "  " + status
	}
	p := tea.NewProgram(newPagerModel(rendered, status), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return NewCommandError("preview", "page", "pager failed", err)
	}
	return nil
}
