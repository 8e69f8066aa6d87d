package conduit

import (
	"sync"
	"time"
)

// waitCondUntil parks on cond, which must already be locked by the caller,
// until predicate reports true or deadline passes. hasDeadline == false
// means wait forever (deadline is ignored). It returns predicate()'s final
// value: true if progress became possible, false if the deadline elapsed
// first.
//
// sync.Cond has no built-in timed wait. The deadline is enforced by
// arming a single-shot timer that, on firing, takes the same lock and
// broadcasts the condition variable so every parked waiter wakes up and
// re-validates its own predicate and deadline — the same
// broadcast-and-re-check discipline Close uses.
func waitCondUntil(cond *sync.Cond, deadline time.Time, hasDeadline bool, predicate func() bool) bool {
	if predicate() {
		return true
	}
	if !hasDeadline {
		for !predicate() {
			cond.Wait()
		}
		return true
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}

	timer := time.AfterFunc(remaining, func() {
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()

	for !predicate() && time.Now().Before(deadline) {
		cond.Wait()
	}
	return predicate()
}
