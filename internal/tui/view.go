package tui

// View renders the panel at the current terminal size. Nothing is drawn
// until the first resize message reports a size.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return RenderPanel(m.panelTitle(), m.body, m.width, m.height, m.theme)
}

func (m Model) panelTitle() string {
	f := m.frame
	if f.Title == "" {
		f.Title = m.title
	}
	if !m.hasFrame {
		return f.Title
	}
	return f.Label()
}

func (m Model) panelBody() string {
	if !m.hasFrame {
		return ""
	}
	if m.frame.Failed {
		return errorStyle.Render(m.frame.Body)
	}
	return m.frame.Body
}
