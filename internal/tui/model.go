package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/tui/components"
	"github.com/netios/termwatch/internal/watch"
)

// Model is the bubbletea model behind Surface. It only displays the last
// frame it was sent and forwards key presses; the watch loop decides what
// a key means.
type Model struct {
	keys  chan<- event.Key
	ready func()
	theme Theme
	title string

	frame    watch.Frame
	hasFrame bool
	body     components.TextView

	width  int
	height int
}

// New creates a Model that pushes key presses into keys. Keys are dropped
// when the channel is full.
func New(title string, theme Theme, keys chan<- event.Key) Model {
	if title == "" {
		title = watch.DefaultTitle
	}
	return Model{
		keys:  keys,
		theme: theme,
		title: title,
		body:  components.NewTextView(minWidth-2, minHeight-2),
	}
}

// Init reports readiness once the program has taken over the terminal.
func (m Model) Init() tea.Cmd {
	if m.ready == nil {
		return nil
	}
	ready := m.ready
	return func() tea.Msg {
		ready()
		return nil
	}
}
