// Package tui draws the watch dashboard with bubbletea and lipgloss: one
// rounded panel filling the screen, titled in the top border, holding the
// latest command output.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorGray = lipgloss.Color("#888888")
	colorRed  = lipgloss.Color("#FF6B6B")
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
