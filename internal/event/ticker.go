package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Ticker emits a Tick immediately and then once per Interval.
type Ticker struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Run emits ticks onto bus until ctx is done. Ticks that find the bus full
// are dropped rather than queued behind a slow consumer. A cancelled context
// is the normal way to stop it and is not an error.
func (t *Ticker) Run(ctx context.Context, bus Sender) error {
	if t.Interval <= 0 {
		return fmt.Errorf("event: ticker interval must be positive, got %v", t.Interval)
	}
	log := t.Logger
	if log == nil {
		log = slog.Default()
	}

	emit := func(at time.Time) {
		if !bus.TrySend(Tick(at)) {
			log.Debug("tick dropped, event bus full")
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	emit(time.Now())

	tk := time.NewTicker(t.Interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-tk.C:
			emit(at)
		}
	}
}
