package event

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultPollTimeout bounds each key poll so the reader notices shutdown
// without spinning.
const DefaultPollTimeout = 100 * time.Millisecond

// ErrClosed is returned by a KeySource whose terminal has been released.
// Readers treat it as a normal end of input.
var ErrClosed = errors.New("terminal surface closed")

// KeySource is a terminal input decoder. PollKey waits up to timeout for a
// key press; ok is false when the timeout elapsed without one.
type KeySource interface {
	PollKey(ctx context.Context, timeout time.Duration) (k Key, ok bool, err error)
}

// InputReader turns key presses from Source into events.
type InputReader struct {
	Source  KeySource
	IsQuit  func(Key) bool
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run polls for keys until the quit key is seen, the source fails, or ctx is
// done. The quit key produces a Quit event and ends the reader for good; any
// other key produces an Input event, dropped if the bus is full. A poll
// error is converted to Quit so the session still ends through the
// coordinator's cleanup; only errors other than ErrClosed are logged.
func (r *InputReader) Run(ctx context.Context, bus Sender) error {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}

	for ctx.Err() == nil {
		k, ok, err := r.Source.PollKey(ctx, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, ErrClosed) {
				log.Debug("input source closed")
			} else {
				log.Error("input reader stopped", "error", err)
			}
			bus.Send(ctx, Quit())
			return nil
		}
		if !ok {
			continue
		}
		if r.IsQuit != nil && r.IsQuit(k) {
			bus.Send(ctx, Quit())
			return nil
		}
		if !bus.TrySend(Input(k)) {
			log.Debug("key dropped, event bus full", "key", k.String())
		}
	}
	return nil
}
