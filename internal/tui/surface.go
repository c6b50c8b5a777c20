package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/watch"
)

const (
	defaultKeyBuffer = 16
	quitTimeout      = 2 * time.Second
)

// Options configures Start.
type Options struct {
	Title       string
	AccentColor string

	// Input and Output default to the process's stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// KeyBuffer is how many unread key presses are kept before new ones
	// are dropped.
	KeyBuffer int

	// ProgramOptions are appended after the defaults.
	ProgramOptions []tea.ProgramOption
}

// Surface runs a bubbletea program on the alternate screen and exposes it
// as a watch.Surface and an event.KeySource.
type Surface struct {
	program *tea.Program
	keys    chan event.Key
	done    chan struct{}
	out     *termenv.Output

	runErr error // set before done is closed

	restoreOnce sync.Once
	restoreErr  error
}

// Start launches the program and returns once it owns the terminal.
func Start(opts Options) (*Surface, error) {
	buf := opts.KeyBuffer
	if buf <= 0 {
		buf = defaultKeyBuffer
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	s := &Surface{
		keys: make(chan event.Key, buf),
		done: make(chan struct{}),
		out:  termenv.NewOutput(out),
	}

	ready := make(chan struct{})
	var readyOnce sync.Once
	model := New(opts.Title, NewTheme(opts.AccentColor), s.keys)
	model.ready = func() { readyOnce.Do(func() { close(ready) }) }

	popts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
		tea.WithOutput(out),
	}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	popts = append(popts, opts.ProgramOptions...)
	s.program = tea.NewProgram(model, popts...)

	go func() {
		_, err := s.program.Run()
		s.runErr = err
		close(s.done)
	}()

	select {
	case <-ready:
		return s, nil
	case <-s.done:
		if s.runErr != nil {
			return nil, fmt.Errorf("tui: start: %w", s.runErr)
		}
		return nil, fmt.Errorf("tui: start: %w", watch.ErrClosed)
	}
}

// Draw hands the frame to the program for rendering.
func (s *Surface) Draw(f watch.Frame) error {
	select {
	case <-s.done:
		return watch.ErrClosed
	default:
	}
	s.program.Send(frameMsg(f))
	return nil
}

// PollKey waits up to timeout for a key press. It returns watch.ErrClosed
// once the program has exited.
func (s *Surface) PollKey(ctx context.Context, timeout time.Duration) (event.Key, bool, error) {
	select {
	case k := <-s.keys:
		return k, true, nil
	default:
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case k := <-s.keys:
		return k, true, nil
	case <-s.done:
		return "", false, watch.ErrClosed
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-t.C:
		return "", false, nil
	}
}

// ShowCursor makes the terminal cursor visible.
func (s *Surface) ShowCursor() error {
	s.out.ShowCursor()
	return nil
}

// Restore stops the program, which leaves the alternate screen and raw
// mode, then shows the cursor. Only the first call has any effect.
func (s *Surface) Restore() error {
	s.restoreOnce.Do(func() {
		s.program.Quit()
		select {
		case <-s.done:
		case <-time.After(quitTimeout):
			s.program.Kill()
			<-s.done
		}
		s.out.ShowCursor()

		if s.runErr != nil && !errors.Is(s.runErr, tea.ErrProgramKilled) {
			s.restoreErr = fmt.Errorf("tui: restore: %w", s.runErr)
		}
	})
	return s.restoreErr
}
