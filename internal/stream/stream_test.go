package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/netios/termwatch/internal/watch"
)

var _ watch.Surface = (*Surface)(nil)

func TestDraw(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		frame watch.Frame
		want  string
	}{
		{
			name:  "success",
			frame: watch.Frame{Command: "echo hi", Interval: 2 * time.Second, At: at, Body: "hi\n"},
			want:  "Every 2s: echo hi  2026-01-02 03:04:05\n\nhi\n\n",
		},
		{
			name:  "body without newline",
			frame: watch.Frame{Command: "printf x", Interval: time.Second, At: at, Body: "x"},
			want:  "Every 1s: printf x  2026-01-02 03:04:05\n\nx\n\n",
		},
		{
			name:  "non-zero exit",
			frame: watch.Frame{Command: "false", Interval: time.Second, At: at, ExitCode: 1},
			want:  "Every 1s: false  2026-01-02 03:04:05  [exit 1]\n\n\n",
		},
		{
			name:  "launch failure",
			frame: watch.Frame{Command: "date", Interval: time.Second, Failed: true, Body: "error: no shell"},
			want:  "Every 1s: date  [error]\n\nerror: no shell\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := New(&buf, Options{NoColor: true})
			if err := s.Draw(tt.frame); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestDraw_Appends(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{NoColor: true})
	_ = s.Draw(watch.Frame{Command: "date", Body: "one\n"})
	_ = s.Draw(watch.Frame{Command: "date", Body: "two\n"})

	out := buf.String()
	if strings.Count(out, "Every ") != 2 {
		t.Errorf("want two headers, got:\n%s", out)
	}
	if strings.Index(out, "one") > strings.Index(out, "two") {
		t.Error("frames out of order")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestDraw_WriteError(t *testing.T) {
	s := New(failingWriter{}, Options{NoColor: true})
	err := s.Draw(watch.Frame{Command: "date"})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("err = %v, want write error", err)
	}
}

func TestRestore(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{NoColor: true})

	if err := s.ShowCursor(); err != nil {
		t.Fatalf("ShowCursor: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Restore(); err != nil {
			t.Fatalf("Restore #%d: %v", i+1, err)
		}
	}
	if err := s.Draw(watch.Frame{Command: "date"}); !errors.Is(err, watch.ErrClosed) {
		t.Errorf("Draw after Restore = %v, want ErrClosed", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}
