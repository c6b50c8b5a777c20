// Package stream is a watch.Surface for output that is not a terminal. Each
// refresh is appended to the writer as a header line followed by the output.
package stream

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/netios/termwatch/internal/watch"
)

const timeLayout = "2006-01-02 15:04:05"

// Options configures a Surface.
type Options struct {
	NoColor bool
}

// Surface writes frames to an io.Writer.
type Surface struct {
	w io.Writer

	header *color.Color
	stamp  *color.Color
	failed *color.Color

	mu     sync.Mutex
	closed bool
}

// New returns a Surface writing to w.
func New(w io.Writer, opts Options) *Surface {
	s := &Surface{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		stamp:  color.New(color.FgHiBlack),
		failed: color.New(color.FgRed, color.Bold),
	}
	if opts.NoColor {
		s.header.DisableColor()
		s.stamp.DisableColor()
		s.failed.DisableColor()
	}
	return s
}

// Draw appends f to the output.
func (s *Surface) Draw(f watch.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return watch.ErrClosed
	}

	var b strings.Builder
	b.WriteString(s.header.Sprintf("Every %s: %s", f.Interval, f.Command))
	if !f.At.IsZero() {
		b.WriteString("  ")
		b.WriteString(s.stamp.Sprint(f.At.Format(timeLayout)))
	}
	switch {
	case f.Failed:
		b.WriteString(s.failed.Sprint("  [error]"))
	case f.ExitCode != 0:
		b.WriteString(s.failed.Sprintf("  [exit %d]", f.ExitCode))
	}
	b.WriteString("\n\n")
	b.WriteString(f.Body)
	if f.Body != "" && !strings.HasSuffix(f.Body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("stream: write: %w", err)
	}
	return nil
}

// ShowCursor does nothing; a stream has no cursor.
func (s *Surface) ShowCursor() error { return nil }

// Restore stops further drawing. It is idempotent.
func (s *Surface) Restore() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
