package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/watch"
)

// Update handles resizes, key presses and new frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if l := Calculate(m.width, m.height); !l.TooSmall {
			m.body = m.body.SetSize(l.Body.Width, l.Body.Height)
		}
	case tea.KeyMsg:
		m.forwardKey(event.Key(msg.String()))
	case frameMsg:
		m.frame = watch.Frame(msg)
		m.hasFrame = true
		m.body = m.body.SetContent(m.panelBody())
	}
	return m, nil
}

func (m Model) forwardKey(k event.Key) {
	if m.keys == nil {
		return
	}
	select {
	case m.keys <- k:
	default:
	}
}
