package conduit

import "time"

// SendTimeout behaves like [Channel.Send] but gives up after d elapses
// without a place to put v. d <= 0 is treated as non-blocking, equivalent
// to [Channel.TrySend]: with no deadline to wait out there is nothing to
// park for. On [SendTimeoutResult.TimedOut] the value that could not be
// delivered is returned unchanged in the result's Value field so the
// caller can retry or drop it explicitly.
func (c *Channel[T]) SendTimeout(v T, d time.Duration) SendTimeoutResult[T] {
	if d <= 0 {
		switch r := c.TrySend(v); {
		case r.Ok():
			return SendTimeoutResult[T]{status: sendTimeoutOK}
		case r.Closed():
			return SendTimeoutResult[T]{status: sendTimeoutClosed}
		default:
			return SendTimeoutResult[T]{Value: v, status: sendTimeoutTimedOut}
		}
	}

	deadline := time.Now().Add(d)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.metrics.observeSendTimeout(sendTimeoutClosed)
		return SendTimeoutResult[T]{status: sendTimeoutClosed}
	}

	if !c.unbuffered() {
		ready := waitCondUntil(c.notFull, deadline, true, func() bool {
			return c.count < c.capacity || c.closed
		})
		if c.closed {
			c.metrics.observeSendTimeout(sendTimeoutClosed)
			return SendTimeoutResult[T]{status: sendTimeoutClosed}
		}
		if !ready {
			c.metrics.observeSendTimeout(sendTimeoutTimedOut)
			return SendTimeoutResult[T]{Value: v, status: sendTimeoutTimedOut}
		}
		c.buffer[c.tail] = v
		c.tail = (c.tail + 1) % c.capacity
		c.count++
		c.notEmpty.Signal()
		c.notifySelectWaitersLocked()
		c.metrics.observeSendTimeout(sendTimeoutOK)
		c.metrics.observeLen(c.lenLocked())
		return SendTimeoutResult[T]{status: sendTimeoutOK}
	}

	c.pendingValue = v
	c.pendingReady = true
	c.pendingTaken = false
	c.notEmpty.Signal()
	c.notifySelectWaitersLocked()
	c.metrics.observeLen(c.lenLocked())

	waitCondUntil(c.notFull, deadline, true, func() bool {
		return c.pendingTaken || c.closed
	})

	taken := c.pendingTaken
	closed := c.closed
	if !taken {
		// Withdraw the offer: still holding the lock, so no receiver can
		// take it out from under us after this point.
		var zero T
		c.pendingValue = zero
		c.pendingReady = false
	}
	c.pendingTaken = false
	c.metrics.observeLen(c.lenLocked())

	switch {
	case taken:
		c.metrics.observeSendTimeout(sendTimeoutOK)
		return SendTimeoutResult[T]{status: sendTimeoutOK}
	case closed:
		c.metrics.observeSendTimeout(sendTimeoutClosed)
		return SendTimeoutResult[T]{status: sendTimeoutClosed}
	default:
		c.metrics.observeSendTimeout(sendTimeoutTimedOut)
		return SendTimeoutResult[T]{Value: v, status: sendTimeoutTimedOut}
	}
}

// RecvTimeout behaves like [Channel.Recv] but gives up after d elapses
// without a value becoming available. d <= 0 is treated as non-blocking,
// equivalent to [Channel.TryRecv].
func (c *Channel[T]) RecvTimeout(d time.Duration) RecvTimeoutResult[T] {
	if d <= 0 {
		switch r := c.TryRecv(); {
		case r.Ok():
			return RecvTimeoutResult[T]{Value: r.Value, status: recvTimeoutOK}
		case r.Closed():
			return RecvTimeoutResult[T]{status: recvTimeoutClosed}
		default:
			return RecvTimeoutResult[T]{status: recvTimeoutTimedOut}
		}
	}

	deadline := time.Now().Add(d)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.unbuffered() {
		ready := waitCondUntil(c.notEmpty, deadline, true, func() bool {
			return c.count > 0 || c.closed
		})
		if c.count > 0 {
			v := c.buffer[c.head]
			var zero T
			c.buffer[c.head] = zero
			c.head = (c.head + 1) % c.capacity
			c.count--
			c.notFull.Signal()
			c.notifySelectWaitersLocked()
			c.metrics.observeRecvTimeout(recvTimeoutOK)
			c.metrics.observeLen(c.lenLocked())
			return RecvTimeoutResult[T]{Value: v, status: recvTimeoutOK}
		}
		if !ready {
			c.metrics.observeRecvTimeout(recvTimeoutTimedOut)
			return RecvTimeoutResult[T]{status: recvTimeoutTimedOut}
		}
		c.metrics.observeRecvTimeout(recvTimeoutClosed)
		return RecvTimeoutResult[T]{status: recvTimeoutClosed}
	}

	c.waitingReceivers++
	c.notifySelectWaitersLocked()
	ready := waitCondUntil(c.notEmpty, deadline, true, func() bool {
		return c.pendingReady || c.closed
	})
	c.waitingReceivers--

	if c.pendingReady && !c.pendingTaken {
		v := c.pendingValue
		c.pendingTaken = true
		c.pendingReady = false
		c.notFull.Signal()
		c.notifySelectWaitersLocked()
		c.metrics.observeRecvTimeout(recvTimeoutOK)
		c.metrics.observeLen(c.lenLocked())
		return RecvTimeoutResult[T]{Value: v, status: recvTimeoutOK}
	}
	if !ready {
		c.metrics.observeRecvTimeout(recvTimeoutTimedOut)
		return RecvTimeoutResult[T]{status: recvTimeoutTimedOut}
	}
	c.metrics.observeRecvTimeout(recvTimeoutClosed)
	return RecvTimeoutResult[T]{status: recvTimeoutClosed}
}
