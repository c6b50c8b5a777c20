package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/netios/termwatch/internal/bell"
	"github.com/netios/termwatch/internal/config"
	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/logging"
	"github.com/netios/termwatch/internal/runner"
	"github.com/netios/termwatch/internal/screen"
	"github.com/netios/termwatch/internal/stream"
	"github.com/netios/termwatch/internal/tui"
	"github.com/netios/termwatch/internal/watch"
)

// env is the process environment a session runs against.
type env struct {
	stdout   io.Writer
	terminal bool // stdout is a terminal
}

func newEnv(cmd *cobra.Command) env {
	return env{
		stdout:   cmd.OutOrStdout(),
		terminal: stdoutIsTerminal(),
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveBackend turns "auto" into a concrete backend: the full-screen view
// on a terminal, plain output otherwise.
func resolveBackend(backend string, terminal bool) string {
	if backend != config.BackendAuto {
		return backend
	}
	if terminal {
		return config.BackendTea
	}
	return config.BackendPlain
}

// openSurface starts the chosen backend. keys is nil for backends without
// keyboard input.
func openSurface(backend string, s config.Settings, e env) (watch.Surface, event.KeySource, error) {
	switch backend {
	case config.BackendTea:
		sf, err := tui.Start(tui.Options{Title: watch.DefaultTitle, AccentColor: s.AccentColor})
		if err != nil {
			return nil, nil, err
		}
		return sf, sf, nil
	case config.BackendTcell:
		sf, err := screen.Open(screen.Options{Title: watch.DefaultTitle, AccentColor: s.AccentColor})
		if err != nil {
			return nil, nil, err
		}
		return sf, sf, nil
	case config.BackendPlain:
		return stream.New(e.stdout, stream.Options{NoColor: !e.terminal}), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}

// run executes one watch session. The terminal is restored on every path
// out of here, including setup failures after the surface opened.
func run(ctx context.Context, s config.Settings, e env) error {
	log, closeLog, err := logging.New(s.LogFile, s.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	backend := resolveBackend(s.Backend, e.terminal)
	log.Info("session starting",
		"command", s.Command,
		"interval", s.Interval(),
		"shell", s.Shell,
		"backend", backend,
		"blocking", s.Blocking,
	)

	surface, keys, err := openSurface(backend, s, e)
	if err != nil {
		log.Error("open surface", "backend", backend, "error", err)
		return err
	}
	defer func() {
		if rerr := surface.Restore(); rerr != nil {
			log.Warn("restore terminal", "error", rerr)
		}
	}()

	var alert watch.Alerter
	if s.Beep {
		b, berr := bell.New()
		if berr != nil {
			log.Warn("audio unavailable, --beep is silent", "error", berr)
		}
		defer b.Close()
		alert = b
	}

	r := runner.New(s.Shell)
	r.CaptureStderr = s.CaptureStderr

	err = watch.Run(ctx, watch.Options{
		Command:  s.Command,
		Interval: s.Interval(),
		Title:    watch.DefaultTitle,
		Blocking: s.Blocking,
		Runner:   r,
		Surface:  surface,
		Keys:     keys,
		Alert:    alert,
		Logger:   log,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("session failed", "error", err)
		return err
	}
	log.Info("session ended")
	return nil
}
