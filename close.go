package conduit

// Close closes the channel. Idempotent: only the first call has any
// effect. After Close returns, every send fails with [SendClosed] (or
// [TrySendClosed] / a timed-out-turned-closed result), and every parked
// Send, Recv, the timed variants, and [SelectWait] wake up within one
// scheduling step. Recv still drains any values buffered before Close was
// called; it reports no more values only once the buffer (or, for an
// unbuffered channel, the in-flight rendezvous) is empty.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.notEmpty.Broadcast()
	c.notFull.Broadcast()
	c.notifySelectWaitersLocked()
	c.metrics.observeClose()
}

// IsClosed reports whether Close has been called. Once true, it never
// reverts to false.
func (c *Channel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Len returns the number of values currently buffered. For an unbuffered
// channel this is 1 while a value is offered but not yet taken, else 0.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lenLocked()
}

// Capacity returns the channel's fixed buffer size (0 for unbuffered).
func (c *Channel[T]) Capacity() int {
	return c.capacity
}
