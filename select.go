package conduit

import (
	"reflect"
	"sort"
	"sync"
	"time"
)

// waiter is a single select's parking post. It is shared across every case
// in one SelectWait call: whichever channel becomes ready first signals it,
// and the select goroutine wakes up to re-check every case.
type waiter struct {
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
}

func newWaiter() *waiter {
	w := &waiter{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *waiter) notify() {
	w.mu.Lock()
	w.signaled = true
	w.cond.Signal()
	w.mu.Unlock()
}

// wait parks until notify has been called since the last wait, or until
// deadline passes when hasDeadline is true. It returns whether it woke
// because of a notification rather than the deadline.
func (w *waiter) wait(deadline time.Time, hasDeadline bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	woke := waitCondUntil(w.cond, deadline, hasDeadline, func() bool { return w.signaled })
	w.signaled = false
	return woke
}

// registerWaiterLocked adds w to the set of waiters notified when this
// channel's state changes. Callers must already hold c.mu.
func (c *Channel[T]) registerWaiterLocked(w *waiter) {
	if c.selectWaiters == nil {
		c.selectWaiters = make(map[*waiter]struct{})
	}
	c.selectWaiters[w] = struct{}{}
}

// deregisterWaiterLocked removes w. Callers must already hold c.mu.
func (c *Channel[T]) deregisterWaiterLocked(w *waiter) {
	delete(c.selectWaiters, w)
}

// notifySelectWaitersLocked wakes every waiter currently registered on this
// channel. Callers must already hold c.mu. It is called from every
// state-changing operation (Send, Recv, TrySend, TryRecv, Close) so a
// parked SelectWait never misses a transition.
func (c *Channel[T]) notifySelectWaitersLocked() {
	for w := range c.selectWaiters {
		w.notify()
	}
}

// SelectCase is one branch of a [SelectPoll] or [SelectWait] call, built by
// [RecvCase] or [SendCase]. It carries no channel-type parameter of its own
// so a single select can mix cases over channels of different element
// types.
type SelectCase struct {
	key      uintptr
	lock     func()
	unlock   func()
	ready    func() bool
	register func(*waiter)
	drop     func(*waiter)
	// exhausted reports, while the case's channel is locked, whether this
	// case can never become ready again (its channel is closed and, for a
	// recv-case, fully drained).
	exhausted func() bool
	// metrics is the case's channel's metrics binding, if any, used by
	// SelectWait to report how long the call spent parked. Cases built
	// over a channel without WithMetrics carry a nil value here.
	metrics *channelMetrics
}

// selectWaitMetrics returns the first non-nil metrics binding among cases,
// used to record where a SelectWait call's parked duration is reported.
// Any observed channel's collector works equally well since a shared
// collector is the common case; this just avoids requiring every case's
// channel to be instrumented for the histogram to fire at all.
func selectWaitMetrics(cases []SelectCase) *channelMetrics {
	for _, c := range cases {
		if c.metrics != nil {
			return c.metrics
		}
	}
	return nil
}

// chanLockKey returns a stable, totally ordered identity for a channel's
// mutex, used to lock every case of a select in a fixed global order so two
// concurrent selects sharing channels can never deadlock against each
// other.
func chanLockKey(mu *sync.Mutex) uintptr {
	return reflect.ValueOf(mu).Pointer()
}

// RecvCase builds a select case that becomes ready when a value can be
// received from ch, including when ch is closed and drained (Recv would
// return ok == false).
func RecvCase[T any](ch *Channel[T]) SelectCase {
	return SelectCase{
		key:     chanLockKey(&ch.mu),
		lock:    ch.mu.Lock,
		unlock:  ch.mu.Unlock,
		metrics: ch.metrics,
		ready: func() bool {
			if ch.closed {
				return true
			}
			if ch.capacity > 0 {
				return ch.count > 0
			}
			return ch.pendingReady && !ch.pendingTaken
		},
		register: func(w *waiter) { ch.registerWaiterLocked(w) },
		drop:     func(w *waiter) { ch.deregisterWaiterLocked(w) },
		exhausted: func() bool {
			if !ch.closed {
				return false
			}
			if ch.capacity > 0 {
				return ch.count == 0
			}
			return !(ch.pendingReady && !ch.pendingTaken)
		},
	}
}

// SendCase builds a select case that becomes ready when v could be sent to
// ch without blocking: there is room in a buffered channel, or a receiver
// is already parked waiting on an unbuffered one. A closed channel is never
// ready; picking a send-case never happens on a closed channel.
func SendCase[T any](ch *Channel[T], v T) SelectCase {
	return SelectCase{
		key:     chanLockKey(&ch.mu),
		lock:    ch.mu.Lock,
		unlock:  ch.mu.Unlock,
		metrics: ch.metrics,
		ready: func() bool {
			if ch.closed {
				return false
			}
			if ch.capacity > 0 {
				return ch.count < ch.capacity
			}
			return ch.waitingReceivers > 0 && !ch.pendingReady
		},
		register: func(w *waiter) { ch.registerWaiterLocked(w) },
		drop:     func(w *waiter) { ch.deregisterWaiterLocked(w) },
		exhausted: func() bool {
			return ch.closed
		},
	}
}

// lockAll locks every case's channel in ascending key order, independent of
// the order cases were passed in, so that two selects sharing a subset of
// channels always contend for locks in the same global order. It returns
// the permutation used, needed to unlock in the mirror order.
func lockAll(cases []SelectCase) []int {
	order := make([]int, len(cases))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return cases[order[i]].key < cases[order[j]].key })
	assertLockOrder(cases, order)
	for _, idx := range order {
		cases[idx].lock()
	}
	return order
}

func unlockAll(cases []SelectCase, order []int) {
	for i := len(order) - 1; i >= 0; i-- {
		cases[order[i]].unlock()
	}
}

// firstReady scans cases in argument order (not lock order) and returns the
// index of the first one ready to proceed. Argument order is the priority
// order: when several cases are simultaneously ready, the earliest one
// wins, matching the documented behavior of [SelectPoll].
func firstReady(cases []SelectCase) (int, bool) {
	for i, c := range cases {
		if c.ready() {
			return i, true
		}
	}
	return 0, false
}

// SelectPoll checks every case once, without blocking, and returns the
// index of the first case (in argument order) that is currently ready. It
// returns ok == false if no case is ready right now.
func SelectPoll(cases ...SelectCase) (int, bool) {
	if len(cases) == 0 {
		return 0, false
	}
	order := lockAll(cases)
	defer unlockAll(cases, order)
	return firstReady(cases)
}

// SelectWait behaves like [SelectPoll] but parks until some case becomes
// ready or timeout elapses. timeout == 0 means wait forever. A recv-case on
// a closed channel counts as ready, so its index is returned with
// ok == true. If every case is permanently exhausted (every case is a
// send-case on a closed channel) SelectWait returns immediately with
// ok == false instead of waiting forever on cases that can never fire.
func SelectWait(timeout time.Duration, cases ...SelectCase) (int, bool) {
	if len(cases) == 0 {
		return 0, false
	}

	start := time.Now()
	metrics := selectWaitMetrics(cases)
	defer func() { metrics.observeSelectWaitSeconds(time.Since(start).Seconds()) }()

	hasDeadline := timeout > 0
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	w := newWaiter()

	for {
		order := lockAll(cases)
		if i, ok := firstReady(cases); ok {
			unlockAll(cases, order)
			return i, true
		}
		exhausted := true
		for _, c := range cases {
			if !c.exhausted() {
				exhausted = false
				break
			}
		}
		if exhausted {
			unlockAll(cases, order)
			return 0, false
		}
		for _, c := range cases {
			c.register(w)
		}
		unlockAll(cases, order)
		log.WithField("cases", len(cases)).Debug("select: parked waiter")

		woke := w.wait(deadline, hasDeadline)
		log.WithField("woke", woke).Debug("select: waiter resumed")

		order = lockAll(cases)
		for _, c := range cases {
			c.drop(w)
		}
		if i, ok := firstReady(cases); ok {
			unlockAll(cases, order)
			return i, true
		}
		allExhausted := true
		for _, c := range cases {
			if !c.exhausted() {
				allExhausted = false
				break
			}
		}
		unlockAll(cases, order)

		if allExhausted {
			return 0, false
		}
		if !woke && hasDeadline {
			return 0, false
		}
	}
}
