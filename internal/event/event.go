// Package event defines the events merged by the watch loop and the
// background producers that emit them.
package event

import (
	"time"

	"github.com/netios/termwatch/internal/runner"
)

// Kind identifies the variant of an Event.
type Kind int

const (
	KindInput  Kind = iota // Key press other than quit, or quit seen by the coordinator
	KindTick               // Refresh interval elapsed
	KindQuit               // Session should end
	KindResult             // Background refresh finished
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	case KindQuit:
		return "quit"
	case KindResult:
		return "result"
	default:
		return "unknown"
	}
}

// Key is an opaque key descriptor such as "q", "ctrl+c" or "enter".
type Key string

func (k Key) String() string { return string(k) }

// Event is one item on the bus. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind
	At   time.Time

	// Input
	Key Key

	// Result
	Result runner.Result
	Err    error
}

// Input wraps a key press.
func Input(k Key) Event {
	return Event{Kind: KindInput, Key: k, At: time.Now()}
}

// Tick marks an elapsed refresh period.
func Tick(at time.Time) Event {
	return Event{Kind: KindTick, At: at}
}

// Quit requests termination.
func Quit() Event {
	return Event{Kind: KindQuit, At: time.Now()}
}

// Completed carries the outcome of a background refresh.
func Completed(res runner.Result, err error) Event {
	return Event{Kind: KindResult, Result: res, Err: err, At: time.Now()}
}
