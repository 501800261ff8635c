// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for CLI output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	applyColorProfile()
}

func applyColorProfile() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray

	// ValueStyle is used for regular values and text
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Off-white

	// SuccessStyle is used for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	// ErrorStyle is used for error messages and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// WarningStyle is used for notices that need attention
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // Yellow/Orange
			Bold(true)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	// HighlightStyle marks the selected row in lists
	HighlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")). // Bright green
			Bold(true)

	// NoticeBoxStyle frames blocking notices
	NoticeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2)
)

// RenderSeparator renders a horizontal separator line of the given width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 70
	}
	return SeparatorStyle.Render(strings.Repeat("-", width))
}

// RenderConditional renders text with style if colors are enabled,
// otherwise returns the text unmodified.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}
