package screen

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/netios/termwatch/internal/event"
)

// keyName converts a tcell key event into the descriptor used by the watch
// key map ("q", "ctrl+c", "enter", ...).
func keyName(ev *tcell.EventKey) event.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		r := string(ev.Rune())
		switch {
		case ev.Modifiers()&tcell.ModCtrl != 0:
			return event.Key("ctrl+" + strings.ToLower(r))
		case ev.Modifiers()&tcell.ModAlt != 0:
			return event.Key("alt+" + r)
		}
		return event.Key(r)
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	}
	return event.Key(strings.ToLower(ev.Name()))
}
