package conduit

// Send deposits v into the channel, blocking until there is room (buffered)
// or a receiver is ready to take it (unbuffered). It returns [SendClosed]
// without blocking if the channel is already closed, and returns
// [SendClosed] if the channel is closed while Send is parked.
func (c *Channel[T]) Send(v T) SendResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.metrics.observeSend(SendClosed)
		return SendClosed
	}

	if !c.unbuffered() {
		for c.count == c.capacity && !c.closed {
			c.notFull.Wait()
		}
		if c.closed {
			c.metrics.observeSend(SendClosed)
			return SendClosed
		}
		c.buffer[c.tail] = v
		c.tail = (c.tail + 1) % c.capacity
		c.count++
		c.notEmpty.Signal()
		c.notifySelectWaitersLocked()
		c.metrics.observeSend(SendOK)
		c.metrics.observeLen(c.lenLocked())
		return SendOK
	}

	c.pendingValue = v
	c.pendingReady = true
	c.pendingTaken = false
	c.notEmpty.Signal()
	c.notifySelectWaitersLocked()
	c.metrics.observeLen(c.lenLocked())

	for !c.pendingTaken && !c.closed {
		c.notFull.Wait()
	}

	taken := c.pendingTaken
	var zero T
	c.pendingValue = zero
	c.pendingReady = false
	c.pendingTaken = false
	c.metrics.observeLen(c.lenLocked())

	if taken {
		c.metrics.observeSend(SendOK)
		return SendOK
	}
	c.metrics.observeSend(SendClosed)
	return SendClosed
}

// Recv returns the next value in the channel, blocking until one is
// available or the channel is closed. The second return value is false
// once the channel is closed and fully drained; every value sent before
// close is still delivered first.
func (c *Channel[T]) Recv() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.unbuffered() {
		for c.count == 0 && !c.closed {
			c.notEmpty.Wait()
		}
		if c.count == 0 {
			c.metrics.observeRecv(false)
			var zero T
			return zero, false
		}
		v := c.buffer[c.head]
		var zero T
		c.buffer[c.head] = zero
		c.head = (c.head + 1) % c.capacity
		c.count--
		c.notFull.Signal()
		c.notifySelectWaitersLocked()
		c.metrics.observeRecv(true)
		c.metrics.observeLen(c.lenLocked())
		return v, true
	}

	c.waitingReceivers++
	c.notifySelectWaitersLocked()

	for !c.pendingReady && !c.closed {
		c.notEmpty.Wait()
	}
	c.waitingReceivers--

	if c.pendingReady && !c.pendingTaken {
		v := c.pendingValue
		c.pendingTaken = true
		c.pendingReady = false
		c.notFull.Signal()
		c.notifySelectWaitersLocked()
		c.metrics.observeRecv(true)
		c.metrics.observeLen(c.lenLocked())
		return v, true
	}

	c.metrics.observeRecv(false)
	var zero T
	return zero, false
}
