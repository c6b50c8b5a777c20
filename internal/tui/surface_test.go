package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/watch"
)

var (
	_ watch.Surface   = (*Surface)(nil)
	_ event.KeySource = (*Surface)(nil)
)

func startTestSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := Start(Options{
		Title:  "Watch Command",
		Input:  strings.NewReader(""),
		Output: io.Discard,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = s.Restore() })
	return s
}

func TestSurface_DrawAndRestore(t *testing.T) {
	s := startTestSurface(t)

	s.program.Send(tea.WindowSizeMsg{Width: 40, Height: 8})
	if err := s.Draw(watch.Frame{Title: "Watch Command", Body: "hi\n"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := s.ShowCursor(); err != nil {
		t.Fatalf("ShowCursor: %v", err)
	}
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	select {
	case <-s.done:
	default:
		t.Fatal("program should have exited after Restore")
	}
	if err := s.Draw(watch.Frame{Body: "late"}); !errors.Is(err, watch.ErrClosed) {
		t.Errorf("Draw after Restore = %v, want ErrClosed", err)
	}
}

func TestSurface_RestoreIdempotent(t *testing.T) {
	s := startTestSurface(t)
	for i := 0; i < 3; i++ {
		if err := s.Restore(); err != nil {
			t.Fatalf("Restore #%d: %v", i+1, err)
		}
	}
}

func TestSurface_PollKey(t *testing.T) {
	s := startTestSurface(t)
	ctx := context.Background()

	s.program.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	s.program.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	for _, want := range []event.Key{"x", "q"} {
		k, ok, err := s.PollKey(ctx, time.Second)
		if err != nil {
			t.Fatalf("PollKey: %v", err)
		}
		if !ok || k != want {
			t.Errorf("PollKey = %q, %v; want %q, true", k, ok, want)
		}
	}
}

func TestSurface_PollKeyTimeout(t *testing.T) {
	s := startTestSurface(t)

	start := time.Now()
	_, ok, err := s.PollKey(context.Background(), 20*time.Millisecond)
	if err != nil || ok {
		t.Fatalf("PollKey = _, %v, %v; want no key and no error", ok, err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("PollKey returned before the timeout")
	}
}

func TestSurface_PollKeyCancelled(t *testing.T) {
	s := startTestSurface(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := s.PollKey(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSurface_PollKeyAfterExit(t *testing.T) {
	s := startTestSurface(t)
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, _, err := s.PollKey(context.Background(), time.Second); !errors.Is(err, watch.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}
