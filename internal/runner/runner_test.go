package runner

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultShell); err != nil {
		t.Skip("sh not available")
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	requireShell(t)
	r := New("")
	res, err := r.Run(context.Background(), "echo hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(res.Output); got != "hi\n" {
		t.Errorf("output = %q, want %q", got, "hi\n")
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if res.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

func TestRun_ShellFeatures(t *testing.T) {
	requireShell(t)
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"pipe", "printf 'b\\na\\n' | sort", "a\nb\n"},
		{"and-list", "true && echo done", "done\n"},
		{"quoting", `echo "a  b"`, "a  b\n"},
		{"empty output", "true", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New("sh").Run(context.Background(), tt.command)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := string(res.Output); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	requireShell(t)
	res, err := New("").Run(context.Background(), "echo partial; exit 3")
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
	if string(res.Output) != "partial\n" {
		t.Errorf("output = %q, want %q", res.Output, "partial\n")
	}
}

func TestRun_StderrExcludedByDefault(t *testing.T) {
	requireShell(t)
	res, err := New("").Run(context.Background(), "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(res.Output), "err") {
		t.Errorf("stderr leaked into output: %q", res.Output)
	}
}

func TestRun_CaptureStderr(t *testing.T) {
	requireShell(t)
	r := &Runner{CaptureStderr: true}
	res, err := r.Run(context.Background(), "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(res.Output)
	if !strings.Contains(out, "out") || !strings.Contains(out, "err") {
		t.Errorf("expected combined output, got %q", out)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	r := New("/nonexistent/shell-binary")
	_, err := r.Run(context.Background(), "echo hi")
	if err == nil {
		t.Fatal("expected launch error for missing shell")
	}
	if !strings.Contains(err.Error(), "runner: start") {
		t.Errorf("error should mention start, got %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := (&Runner{WaitDelay: 100 * time.Millisecond}).Run(ctx, "sleep 10")
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %v, want well under the command's 10s", elapsed)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("hi\n"), "hi\n"},
		{"utf8", []byte("héllo"), "héllo"},
		{"invalid byte", []byte{'a', 0xff, 'b'}, "a�b"},
		{"invalid run", []byte("a\xff\xfeb"), "a\uFFFD\uFFFDb"},
		{"truncated sequence", []byte("x\xe6\x97"), "x\uFFFD"},
		{"truncated then ascii", []byte("\xe6\x97a\xe6"), "\uFFFDa\uFFFD"},
		{"surrogate", []byte("\xed\xa0\x80"), "\uFFFD\uFFFD\uFFFD"},
		{"valid after invalid", []byte("\xff日"), "\uFFFD日"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode_AlwaysValidUTF8(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(t, "bytes")
		out := Decode(in)
		require.True(t, utf8.ValidString(out), "decoded output must be valid UTF-8")
		if utf8.Valid(in) {
			require.Equal(t, string(in), out, "valid input must pass through unchanged")
		}
	})
}
