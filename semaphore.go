package conduit

import (
	"context"
	"sync/atomic"
)

// Semaphore is a counting semaphore for bounding concurrency, backed by a
// buffered [Channel]. A slot is represented by an occupied element:
// Acquire deposits a token, Release removes one.
type Semaphore struct {
	slots    *Channel[struct{}]
	cap      int
	acquired atomic.Int64
}

// NewSemaphore creates a semaphore with the given capacity. Panics if
// n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("conduit: NewSemaphore requires n > 0")
	}
	return &Semaphore{
		slots: NewBufferedChannel[struct{}](n),
		cap:   n,
	}
}

// Acquire blocks until a slot is available or ctx is cancelled. Returns
// ctx.Err() on cancellation, nil on success.
//
// Channel.Send has no notion of a context, so a cancellable Acquire runs
// the send in its own goroutine and races it against ctx.Done(). If ctx
// wins the race, a cleanup goroutine waits for the abandoned send to land
// and then removes one token with slots.Recv directly (not through
// Release, so the acquired count is untouched), so the slot isn't leaked.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	acquired := make(chan struct{})
	go func() {
		s.slots.Send(struct{}{})
		close(acquired)
	}()

	select {
	case <-acquired:
		s.acquired.Add(1)
		return nil
	case <-ctx.Done():
		go func() {
			<-acquired
			s.slots.Recv()
		}()
		return ctx.Err()
	}
}

// TryAcquire attempts to acquire a slot without blocking. Returns true if
// acquired, false otherwise.
func (s *Semaphore) TryAcquire() bool {
	if s.slots.TrySend(struct{}{}).Ok() {
		s.acquired.Add(1)
		return true
	}
	return false
}

// Release releases a slot. Panics if more slots are released than
// acquired.
func (s *Semaphore) Release() {
	if s.acquired.Add(-1) < 0 {
		s.acquired.Add(1)
		panic("conduit: Semaphore.Release called without matching Acquire")
	}
	s.slots.Recv()
}

// Available returns the number of available slots. The value may be stale
// in concurrent contexts.
func (s *Semaphore) Available() int {
	return s.cap - s.slots.Len()
}
