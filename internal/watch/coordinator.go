package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/netios/termwatch/internal/event"
	"github.com/netios/termwatch/internal/runner"
)

// State is the coordinator's lifecycle state.
type State int

const (
	StateRunning    State = iota // Consuming events
	StateTerminated              // Done; cleanup has run or is about to
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Coordinator is the single consumer of the event bus. It owns the latest
// command output and is the only component that draws.
type Coordinator struct {
	Runner   CommandRunner
	Surface  Surface
	Bus      *event.Bus
	Keys     KeyMap
	Command  string
	Interval time.Duration
	Title    string

	// Blocking runs the command inside the event loop, so nothing else is
	// handled until it exits. Otherwise the command runs in the background,
	// one at a time, and its outcome comes back as a Result event.
	Blocking bool

	Alert  Alerter // optional
	Logger *slog.Logger

	state    State
	output   string
	renders  atomic.Int64
	slot     *semaphore.Weighted
	inflight bool
	runCtx   context.Context
	once     sync.Once
	log      *slog.Logger
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Output returns the text shown by the most recent draw.
func (c *Coordinator) Output() string { return c.output }

// Renders returns how many frames have been drawn.
func (c *Coordinator) Renders() int { return int(c.renders.Load()) }

// Run consumes events until a Quit event, the quit key, or cancellation of
// ctx, then shows the cursor and restores the surface. Cleanup runs on every
// exit path, including a panic in a collaborator, which is returned as an
// error.
func (c *Coordinator) Run(ctx context.Context) (err error) {
	if c.Bus == nil || c.Surface == nil || c.Runner == nil {
		return errors.New("watch: coordinator needs a bus, a surface and a runner")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.init(runCtx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watch: coordinator panic: %v", r)
			c.log.Error("coordinator panic", "panic", r)
		}
	}()
	defer c.cleanup()
	// Cancel in-flight refreshes before the terminal is handed back.
	defer cancel()

	c.log.Info("watch started", "command", c.Command, "interval", c.Interval, "blocking", c.Blocking, "queue", c.Bus.Cap())
	for c.state == StateRunning {
		select {
		case <-ctx.Done():
			c.terminate("context done")
		case ev := <-c.Bus.Events():
			c.Handle(ctx, ev)
		}
	}
	return nil
}

// Handle processes exactly one event. It is a no-op once terminated.
func (c *Coordinator) Handle(ctx context.Context, ev event.Event) {
	if c.log == nil {
		c.init(ctx)
	}
	if c.state == StateTerminated {
		return
	}

	switch ev.Kind {
	case event.KindInput:
		if c.Keys.IsQuit(ev.Key) {
			c.terminate("quit key")
		}
	case event.KindTick:
		c.refresh(ctx)
	case event.KindResult:
		c.finishRefresh()
		c.render(ctx, ev.Result, ev.Err)
	case event.KindQuit:
		c.terminate("quit event")
	}
}

func (c *Coordinator) init(ctx context.Context) {
	c.log = c.Logger
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.Keys.empty() {
		c.Keys = DefaultKeyMap()
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.slot == nil {
		c.slot = semaphore.NewWeighted(1)
	}
	c.runCtx = ctx
}

func (c *Coordinator) terminate(reason string) {
	c.log.Info("watch terminating", "reason", reason, "renders", c.Renders(), "pending", c.Bus.Len())
	c.state = StateTerminated
}

func (c *Coordinator) refresh(ctx context.Context) {
	if c.Blocking {
		res, err := c.Runner.Run(ctx, c.Command)
		c.render(ctx, res, err)
		return
	}

	if !c.slot.TryAcquire(1) {
		c.log.Debug("refresh still running, tick skipped")
		return
	}
	c.inflight = true

	runCtx, command, bus := c.runCtx, c.Command, c.Bus
	go func() {
		res, err := c.runGuarded(runCtx, command)
		if !bus.Send(runCtx, event.Completed(res, err)) {
			c.slot.Release(1)
		}
	}()
}

// runGuarded runs command, turning a runner panic into an error so the
// outcome still reaches the coordinator.
func (c *Coordinator) runGuarded(ctx context.Context, command string) (res runner.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watch: runner panic: %v", r)
		}
	}()
	return c.Runner.Run(ctx, command)
}

func (c *Coordinator) finishRefresh() {
	if c.inflight {
		c.inflight = false
		c.slot.Release(1)
	}
}

func (c *Coordinator) render(ctx context.Context, res runner.Result, runErr error) {
	if ctx.Err() != nil {
		return
	}

	body := runner.Decode(res.Output)
	failed := runErr != nil
	if failed {
		c.log.Error("command failed", "command", c.Command, "error", runErr)
		body = "error: " + runErr.Error()
	} else {
		c.log.Debug("command finished", "exit_code", res.ExitCode, "duration", res.Duration, "bytes", len(res.Output))
	}
	if (failed || res.ExitCode != 0) && c.Alert != nil {
		c.Alert.Ring()
	}

	c.output = body
	err := c.Surface.Draw(Frame{
		Title:    c.Title,
		Body:     c.output,
		Command:  c.Command,
		Interval: c.Interval,
		At:       time.Now(),
		ExitCode: res.ExitCode,
		Failed:   failed,
	})
	if err != nil {
		if errors.Is(err, ErrClosed) {
			c.terminate("surface closed")
			return
		}
		c.log.Warn("draw failed", "error", err)
		return
	}
	c.renders.Add(1)
}

// cleanup shows the cursor and restores the terminal, in that order. Both
// steps are attempted even if the first fails.
func (c *Coordinator) cleanup() {
	c.once.Do(func() {
		c.state = StateTerminated
		if err := c.Surface.ShowCursor(); err != nil {
			c.log.Warn("show cursor failed", "error", err)
		}
		if err := c.Surface.Restore(); err != nil {
			c.log.Warn("restore terminal failed", "error", err)
		}
	})
}
