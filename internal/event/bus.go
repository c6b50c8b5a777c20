package event

import "context"

// DefaultCapacity is the number of events the bus buffers before producers
// start dropping ticks and key presses.
const DefaultCapacity = 100

// Sender is the producer side of a Bus.
type Sender interface {
	Send(ctx context.Context, ev Event) bool
	TrySend(ev Event) bool
}

// Bus is a bounded multi-producer, single-consumer event queue. It is never
// closed: producers learn that the consumer is gone through their context.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus holding up to capacity pending events.
// A capacity <= 0 uses DefaultCapacity.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{ch: make(chan Event, capacity)}
}

// Events returns the consumer side of the bus.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

// Send enqueues ev, waiting for space until ctx is done. It reports whether
// the event was enqueued.
func (b *Bus) Send(ctx context.Context, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case b.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// TrySend enqueues ev only if there is room, reporting whether it did.
func (b *Bus) TrySend(ev Event) bool {
	select {
	case b.ch <- ev:
		return true
	default:
		return false
	}
}

// Len returns the number of queued events.
func (b *Bus) Len() int { return len(b.ch) }

// Cap returns the bus capacity.
func (b *Bus) Cap() int { return cap(b.ch) }
