// Package watch implements the refresh loop: it consumes ticks and key
// presses from one event bus, runs the watched command, and redraws the
// terminal surface until the session ends.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/runner"
)

// DefaultTitle is the panel title shown above the command output.
const DefaultTitle = "Watch Command"

// ErrClosed is returned by a Surface that can no longer draw or read keys,
// for example because its terminal program already exited. It is the same
// value as event.ErrClosed so input readers recognise it.
var ErrClosed = event.ErrClosed

// Frame is everything a Surface needs to draw one refresh.
type Frame struct {
	Title    string
	Body     string
	Command  string
	Interval time.Duration
	At       time.Time
	ExitCode int
	Failed   bool // the command could not be run; Body holds the error
}

// Label returns the title with a suffix marking a failed or non-zero run.
func (f Frame) Label() string {
	switch {
	case f.Failed:
		return f.Title + " [error]"
	case f.ExitCode != 0:
		return fmt.Sprintf("%s [exit %d]", f.Title, f.ExitCode)
	}
	return f.Title
}

// Surface is a terminal that can show frames and be handed back to the user.
type Surface interface {
	// Draw replaces the screen contents with f, sized to the terminal's
	// current dimensions.
	Draw(f Frame) error
	// ShowCursor makes the cursor visible again.
	ShowCursor() error
	// Restore returns the terminal to the state it had before the surface
	// was opened. It is idempotent and safe to call before any Draw.
	Restore() error
}

// CommandRunner executes the watched command once.
// *runner.Runner satisfies this interface.
type CommandRunner interface {
	Run(ctx context.Context, command string) (runner.Result, error)
}

// Alerter signals a failed refresh to the user.
type Alerter interface {
	Ring()
}

// KeyMap holds the bindings the loop reacts to.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap binds quit to q. ctrl+c is bound as well since raw mode
// swallows the interrupt signal.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// IsQuit reports whether k ends the session.
func (km KeyMap) IsQuit(k event.Key) bool {
	return key.Matches(k, km.Quit)
}

func (km KeyMap) empty() bool {
	return len(km.Quit.Keys()) == 0
}
