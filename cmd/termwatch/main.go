// Package main is the entry point for the termwatch CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netios/termwatch/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "termwatch: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds flag values that are not part of config.Settings.
type cliFlags struct {
	noTUI         bool
	printSettings bool
}

func rootCmd() *cobra.Command {
	settings := config.Defaults()
	var extra cliFlags

	root := &cobra.Command{
		Use:           "termwatch [flags] <interval-seconds> <command>",
		Short:         "Run a shell command periodically and show its latest output full-screen",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, settings, extra, args)
		},
	}

	// Everything after the interval belongs to the command, not to us.
	root.Flags().SetInterspersed(false)

	f := root.Flags()
	f.StringVar(&settings.Shell, "shell", settings.Shell, "shell used to run the command as <shell> -c <command>")
	f.StringVar(&settings.Backend, "backend", settings.Backend, "terminal backend: auto, tea, tcell or plain")
	f.BoolVar(&extra.noTUI, "no-tui", false, "append plain output instead of a full-screen view (same as --backend plain)")
	f.BoolVar(&settings.Blocking, "blocking", false, "run the command inside the event loop; keys wait until it finishes")
	f.BoolVar(&settings.CaptureStderr, "stderr", false, "show the command's stderr along with stdout")
	f.BoolVar(&settings.Beep, "beep", false, "sound a tone when the command fails or exits non-zero")
	f.StringVar(&settings.AccentColor, "accent-color", settings.AccentColor, "hex color for the panel border")
	f.StringVar(&settings.LogFile, "log-file", "", "append logs to this file (default: discard)")
	f.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "log level: debug, info, warn or error")
	f.BoolVar(&extra.printSettings, "print-settings", false, "print the resolved settings as TOML and exit")

	return root
}

// execute validates the invocation and starts the watch session. A wrong
// argument count or a bad interval prints usage and succeeds without
// touching the terminal.
func execute(cmd *cobra.Command, base config.Settings, extra cliFlags, args []string) error {
	s, err := config.ParseArgs(args, base)
	if err != nil {
		stderr := cmd.ErrOrStderr()
		if errors.Is(err, config.ErrInterval) {
			fmt.Fprintf(stderr, "termwatch: %v\n", err)
		}
		if errors.Is(err, config.ErrUsage) || errors.Is(err, config.ErrInterval) {
			fmt.Fprint(stderr, cmd.UsageString())
			return nil
		}
		return err
	}
	if extra.noTUI {
		s.Backend = config.BackendPlain
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if extra.printSettings {
		return s.WriteTOML(cmd.OutOrStdout())
	}

	ctx, cancel := signalContext()
	defer cancel()
	return run(ctx, s, newEnv(cmd))
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}
