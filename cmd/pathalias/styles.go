// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package main

import "github.com/charmbracelet/lipgloss"

// Color palette for terminal output.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorError     = lipgloss.Color("#EF4444")
	colorHighlight = lipgloss.Color("#3B82F6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	aliasStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)
)

// padRight renders s styled and padded to width visible cells.
func padRight(style lipgloss.Style, s string, width int) string {
	return style.Width(width).Render(s)
}
