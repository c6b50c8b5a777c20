// Package config holds the settings of one termwatch session. Settings come
// from the command line only; they are fixed once the session starts.
package config

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAccentColor is the default panel border color (indigo).
const DefaultAccentColor = "#7D56F4"

// Backend names accepted by Settings.Backend.
const (
	BackendAuto  = "auto"
	BackendTea   = "tea"
	BackendTcell = "tcell"
	BackendPlain = "plain"
)

var (
	// ErrUsage reports a wrong number of positional arguments.
	ErrUsage = errors.New("config: expected <interval-seconds> <command>")
	// ErrInterval reports an interval that is not a positive whole number of seconds.
	ErrInterval = errors.New("config: invalid interval")
)

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var logLevels = []string{"debug", "info", "warn", "error"}

// Settings is the resolved configuration of a session.
type Settings struct {
	IntervalSeconds int    `toml:"interval_seconds"`
	Command         string `toml:"command"`
	Shell           string `toml:"shell"`
	Backend         string `toml:"backend"`
	Blocking        bool   `toml:"blocking"`
	CaptureStderr   bool   `toml:"capture_stderr"`
	Beep            bool   `toml:"beep"`
	AccentColor     string `toml:"accent_color"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
}

// Defaults returns Settings with everything but the interval and command set.
func Defaults() Settings {
	return Settings{
		Shell:       "sh",
		Backend:     BackendAuto,
		AccentColor: DefaultAccentColor,
		LogLevel:    "info",
	}
}

// Interval returns the refresh period.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// ParseArgs fills the interval and command of base from the two positional
// arguments. The command is kept verbatim for the shell to interpret.
func ParseArgs(args []string, base Settings) (Settings, error) {
	if len(args) != 2 {
		return base, fmt.Errorf("%w (got %d arguments)", ErrUsage, len(args))
	}
	secs, err := ParseInterval(args[0])
	if err != nil {
		return base, err
	}
	base.IntervalSeconds = secs
	base.Command = args[1]
	return base, nil
}

// ParseInterval parses a positive whole number of seconds.
func ParseInterval(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a whole number of seconds", ErrInterval, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w %q: must be greater than zero", ErrInterval, s)
	}
	return n, nil
}

// Validate checks the settings for values that would fail later in
// confusing ways. It returns all found issues joined together.
func (s Settings) Validate() error {
	var errs []error

	if s.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("interval_seconds must be > 0"))
	}
	if strings.TrimSpace(s.Command) == "" {
		errs = append(errs, fmt.Errorf("command must not be empty"))
	}
	if strings.TrimSpace(s.Shell) == "" {
		errs = append(errs, fmt.Errorf("shell must not be empty"))
	}

	switch s.Backend {
	case BackendAuto, BackendTea, BackendTcell, BackendPlain:
	default:
		errs = append(errs, fmt.Errorf("backend must be one of auto, tea, tcell, plain (got %q)", s.Backend))
	}

	if s.AccentColor != "" && !hexColorRe.MatchString(s.AccentColor) {
		errs = append(errs, fmt.Errorf("accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}

	if !validLevel(s.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of %s (got %q)", strings.Join(logLevels, ", "), s.LogLevel))
	}

	return errors.Join(errs...)
}

func validLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

// WriteTOML writes the settings as a TOML document.
func (s Settings) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	return nil
}
