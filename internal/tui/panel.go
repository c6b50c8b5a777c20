package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/netios/termwatch/internal/tui/components"
)

// RenderPanel renders a rounded panel exactly width×height cells in size,
// with title set into the top border and body inside. The view is resized to
// the panel interior if the caller has not done so already. A terminal
// smaller than the minimum gets a short notice instead.
func RenderPanel(title string, body components.TextView, width, height int, t Theme) string {
	l := Calculate(width, height)
	if l.TooSmall {
		return statusStyle.Render("terminal too small")
	}

	b := lipgloss.RoundedBorder()
	top := topBorder(b, title, l.Panel.Width, t)

	if w, h := body.Size(); w != l.Body.Width || h != l.Body.Height {
		body = body.SetSize(l.Body.Width, l.Body.Height)
	}
	box := t.border.
		Border(b, false, true, true, true).
		Width(l.Body.Width).
		Height(l.Body.Height).
		Render(body.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, box)
}

// topBorder builds "╭─ title ───╮" spanning width cells.
func topBorder(b lipgloss.Border, title string, width int, t Theme) string {
	inner := width - 2
	if title == "" || inner < 4 {
		return t.border.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	}

	label := " " + lipgloss.NewStyle().MaxWidth(inner-3).Render(title) + " "
	fill := inner - 1 - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}
	return t.border.Render(b.TopLeft+b.Top) +
		t.title.Render(label) +
		t.border.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}
