package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the accent-color-derived styles of the panel.
type Theme struct {
	border lipgloss.Style // border runes
	title  lipgloss.Style // title inside the top border
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		border: lipgloss.NewStyle().
			Foreground(c).
			BorderForeground(c),
		title: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
	}
}
