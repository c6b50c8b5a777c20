// Package runner executes a shell command once and captures its output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultShell is the shell used when Runner.Shell is empty.
const DefaultShell = "sh"

// DefaultWaitDelay bounds how long Run waits for inherited output pipes to
// close after the command's context is cancelled.
const DefaultWaitDelay = 500 * time.Millisecond

// Result is the outcome of one command invocation that managed to start.
type Result struct {
	Output    []byte
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
}

// Runner spawns "<Shell> -c <command>" and waits for it to finish.
type Runner struct {
	// Shell is the interpreter binary. Defaults to "sh".
	Shell string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env, if non-nil, replaces the inherited environment.
	Env []string
	// CaptureStderr merges stderr into Output.
	CaptureStderr bool
	// WaitDelay is passed to exec.Cmd.WaitDelay. Zero uses DefaultWaitDelay.
	WaitDelay time.Duration
}

// New creates a Runner for the given shell.
func New(shell string) *Runner {
	return &Runner{Shell: shell}
}

// Run executes command through the shell and returns its captured output.
// A non-zero exit status is reported in Result.ExitCode, not as an error;
// only a launch failure or a cancelled context produces an error. There is
// no timeout and no retry.
func (r *Runner) Run(ctx context.Context, command string) (Result, error) {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if r.CaptureStderr {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = &stderr
	}

	res := Result{StartedAt: time.Now()}
	if err := cmd.Start(); err != nil {
		return res, fmt.Errorf("runner: start %s: %w", shell, err)
	}

	err := cmd.Wait()
	res.Duration = time.Since(res.StartedAt)
	res.Output = stdout.Bytes()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("runner: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		return res, nil
	}
	if detail := strings.TrimSpace(stderr.String()); detail != "" {
		return res, fmt.Errorf("runner: wait: %w: %s", err, detail)
	}
	return res, fmt.Errorf("runner: wait: %w", err)
}

// Decode converts captured output to text, replacing each invalid UTF-8
// sequence with its own U+FFFD. It never fails.
func Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[invalidPrefix(b):]
			continue
		}
		sb.Write(b[:size])
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefix returns the length of the invalid sequence at the start of
// b: a lead byte plus whatever continuation bytes could still have
// completed it. A truncated "\xe6\x97" is one sequence, "\xff\xfe" is two.
func invalidPrefix(b []byte) int {
	var n int
	lo, hi := byte(0x80), byte(0xBF)
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		n = 2
	case c == 0xE0:
		n, lo = 3, 0xA0
	case c == 0xED:
		n, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		n = 3
	case c == 0xF0:
		n, lo = 4, 0x90
	case c == 0xF4:
		n, hi = 4, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		n = 4
	default:
		return 1
	}
	if len(b) < 2 || b[1] < lo || b[1] > hi {
		return 1
	}
	i := 2
	for i < n && i < len(b) && b[i] >= 0x80 && b[i] <= 0xBF {
		i++
	}
	return i
}
