package watch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netios/termwatch/internal/event"
)

// Options configures one watch session.
type Options struct {
	Command  string
	Interval time.Duration
	Title    string
	Blocking bool

	Runner  CommandRunner
	Surface Surface
	Keys    event.KeySource // nil when the surface has no keyboard
	KeyMap  KeyMap
	Alert   Alerter
	Logger  *slog.Logger

	Capacity    int           // event bus size; 0 = event.DefaultCapacity
	PollTimeout time.Duration // key poll bound; 0 = event.DefaultPollTimeout
}

// Run starts the ticker and input reader, feeds them into one coordinator,
// and returns once the coordinator has terminated and both producers have
// stopped. The surface is restored before Run returns.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	keymap := opts.KeyMap
	if keymap.empty() {
		keymap = DefaultKeyMap()
	}

	bus := event.NewBus(opts.Capacity)
	coord := &Coordinator{
		Runner:   opts.Runner,
		Surface:  opts.Surface,
		Bus:      bus,
		Keys:     keymap,
		Command:  opts.Command,
		Interval: opts.Interval,
		Title:    opts.Title,
		Blocking: opts.Blocking,
		Alert:    opts.Alert,
		Logger:   log,
	}

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		tk := &event.Ticker{Interval: opts.Interval, Logger: log}
		return tk.Run(loopCtx, bus)
	})
	if opts.Keys != nil {
		g.Go(func() error {
			r := &event.InputReader{
				Source:  opts.Keys,
				IsQuit:  keymap.IsQuit,
				Timeout: opts.PollTimeout,
				Logger:  log,
			}
			return r.Run(loopCtx, bus)
		})
	}
	g.Go(func() error {
		// Producers stop once the consumer is gone.
		defer stop()
		return coord.Run(loopCtx)
	})

	return g.Wait()
}
