package conduit

import (
	"sync"

	"github.com/google/uuid"
)

// Channel is a reference-counted-by-sharing, typed communication endpoint.
// Any number of goroutines may hold the same *Channel[T] and call any of
// its methods concurrently. A Channel with capacity zero is unbuffered:
// Send and Recv only complete in pairs (rendezvous). A Channel with
// capacity > 0 is backed by a fixed-size ring buffer.
//
// All fields below are guarded by mu unless noted otherwise.
type Channel[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	capacity int
	buffer   []T
	head     int
	tail     int
	count    int

	// Rendezvous slot, used only when capacity == 0.
	pendingValue T
	pendingReady bool
	pendingTaken bool

	// waitingReceivers counts blocked receivers parked on an unbuffered
	// channel; TrySend and select readiness checks use it to know a
	// handoff can succeed without a value already being published.
	waitingReceivers int

	closed bool

	// selectWaiters holds every waiter currently registered on this
	// channel by a concurrent SelectWait. Membership is only mutated
	// while mu is held; a waiter removes itself before it stops caring
	// about this channel, so the channel never outlives a waiter's
	// ability to deregister.
	selectWaiters map[*waiter]struct{}

	id      uuid.UUID
	metrics *channelMetrics
}

// Option configures a Channel at construction time.
type Option[T any] func(*Channel[T])

// WithMetrics attaches a [MetricsCollector] to the channel. All
// instrumentation is best-effort; a nil collector (the default) disables
// it entirely with no overhead beyond a nil check.
func WithMetrics[T any](collector *MetricsCollector) Option[T] {
	return func(c *Channel[T]) {
		if collector != nil {
			c.metrics = collector.forChannel(c.id)
		}
	}
}

// NewChannel creates an unbuffered channel. Send blocks until a receiver
// is ready to take the value; Recv blocks until a sender offers one.
func NewChannel[T any](opts ...Option[T]) *Channel[T] {
	return newChannel[T](0, opts)
}

// NewBufferedChannel creates a channel backed by a ring buffer with room
// for capacity elements. capacity == 0 behaves exactly like [NewChannel].
// NewBufferedChannel panics if capacity is negative.
func NewBufferedChannel[T any](capacity int, opts ...Option[T]) *Channel[T] {
	if capacity < 0 {
		panic("conduit: capacity must be non-negative")
	}
	return newChannel[T](capacity, opts)
}

func newChannel[T any](capacity int, opts []Option[T]) *Channel[T] {
	c := &Channel[T]{
		capacity: capacity,
		id:       uuid.New(),
	}
	if capacity > 0 {
		c.buffer = make([]T, capacity)
	}
	c.notEmpty = sync.NewCond(&c.mu)
	c.notFull = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// unbuffered reports whether the channel is a rendezvous channel.
func (c *Channel[T]) unbuffered() bool { return c.capacity == 0 }

// lenLocked returns the current buffered/pending count. Callers must
// already hold c.mu; it exists so count-changing operations can report
// their post-operation length to metrics without re-entering c.mu (Len
// takes the lock itself and would deadlock if called from inside one of
// them).
func (c *Channel[T]) lenLocked() int {
	if c.capacity > 0 {
		return c.count
	}
	if c.pendingReady && !c.pendingTaken {
		return 1
	}
	return 0
}
