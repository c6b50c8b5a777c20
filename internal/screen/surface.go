// Package screen is a watch.Surface drawn directly with tcell, for terminals
// where the bubbletea renderer is not wanted.
package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/watch"
)

const (
	defaultAccentColor = "#7D56F4"
	keyBuffer          = 16
)

// Options configures a Surface.
type Options struct {
	Title       string
	AccentColor string
}

// Surface draws frames on a tcell.Screen and reads keys from it. It
// implements watch.Surface and event.KeySource.
type Surface struct {
	scr   tcell.Screen
	title string

	borderStyle tcell.Style
	titleStyle  tcell.Style
	bodyStyle   tcell.Style
	errorStyle  tcell.Style

	mu       sync.Mutex
	last     watch.Frame
	hasFrame bool

	keys   chan event.Key
	closed chan struct{} // closed by Restore
	done   chan struct{} // closed when the event loop stops

	finiOnce sync.Once
}

// Open creates and initialises a Surface on the controlling terminal.
func Open(opts Options) (*Surface, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("screen: open: %w", err)
	}
	return New(scr, opts)
}

// New initialises scr and starts reading its events. The Surface owns scr
// from here on and finalises it in Restore.
func New(scr tcell.Screen, opts Options) (*Surface, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("screen: init: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = watch.DefaultTitle
	}
	accent := opts.AccentColor
	if accent == "" {
		accent = defaultAccentColor
	}
	c := tcell.GetColor(accent)

	s := &Surface{
		scr:         scr,
		title:       title,
		borderStyle: tcell.StyleDefault.Foreground(c),
		titleStyle:  tcell.StyleDefault.Foreground(c).Bold(true),
		bodyStyle:   tcell.StyleDefault,
		errorStyle:  tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		keys:        make(chan event.Key, keyBuffer),
		closed:      make(chan struct{}),
		done:        make(chan struct{}),
	}

	scr.HideCursor()
	scr.Clear()
	s.redraw()

	go s.eventLoop()
	return s, nil
}

// eventLoop forwards key presses and redraws on resize until the screen
// is finalised.
func (s *Surface) eventLoop() {
	defer close(s.done)
	for {
		ev := s.scr.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.scr.Sync()
			s.redraw()
		case *tcell.EventKey:
			select {
			case s.keys <- keyName(ev):
			default:
			}
		}
	}
}

// Draw shows f and remembers it for redraws after a resize.
func (s *Surface) Draw(f watch.Frame) error {
	select {
	case <-s.closed:
		return watch.ErrClosed
	default:
	}

	s.mu.Lock()
	s.last = f
	s.hasFrame = true
	s.mu.Unlock()

	s.redraw()
	return nil
}

func (s *Surface) redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.closed:
		return
	default:
	}

	s.scr.Clear()
	w, h := s.scr.Size()
	if w < minWidth || h < minHeight {
		drawText(s.scr, 0, 0, w, "terminal too small", s.bodyStyle)
		s.scr.Show()
		return
	}

	f := s.last
	if f.Title == "" {
		f.Title = s.title
	}
	title := f.Title
	if s.hasFrame {
		title = f.Label()
	}
	drawBox(s.scr, w, h, title, s.borderStyle, s.titleStyle)

	if s.hasFrame {
		style := s.bodyStyle
		if f.Failed {
			style = s.errorStyle
		}
		rows := wrapLines(f.Body, w-2)
		for i, row := range rows {
			if i >= h-2 {
				break
			}
			drawText(s.scr, 1, i+1, w-1, row, style)
		}
	}
	s.scr.Show()
}

// PollKey waits up to timeout for a key press. It returns watch.ErrClosed
// once the screen has been finalised.
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
	case <-s.closed:
		return "", false, watch.ErrClosed
	case <-s.done:
		return "", false, watch.ErrClosed
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-t.C:
		return "", false, nil
	}
}

// ShowCursor makes the cursor visible in the bottom-left corner.
func (s *Surface) ShowCursor() error {
	select {
	case <-s.closed:
		return nil
	default:
	}
	_, h := s.scr.Size()
	s.scr.ShowCursor(0, h-1)
	s.scr.Show()
	return nil
}

// Restore finalises the screen, which leaves the alternate screen and raw
// mode. Only the first call has any effect.
func (s *Surface) Restore() error {
	s.finiOnce.Do(func() {
		s.mu.Lock()
		close(s.closed)
		s.mu.Unlock()
		s.scr.Fini()
	})
	return nil
}
