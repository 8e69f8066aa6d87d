package conduitx

import (
	"time"

	"github.com/baxromumarov/conduit"
)

// Builder accumulates [conduit.SelectCase] values along with the
// callbacks to run when each one wins, so a multi-way select reads as a
// list of branches instead of an index switch.
//
//	fired := conduitx.Select().
//		Recv(requests, func(r any) { handle(r) }).
//		Recv(shutdown, func(any) {}).
//		Wait(0)
type Builder struct {
	cases     []conduit.SelectCase
	onRecv    []func()
	kind      []caseKind
	recvFuncs []func() bool
}

type caseKind int

const (
	kindRecv caseKind = iota
	kindSend
)

// Select starts a new case builder.
func Select() *Builder {
	return &Builder{}
}

// Recv adds a receive branch on ch. fn is called with the received value
// once this branch wins and the receive actually succeeds; it is skipped
// entirely if ch turns out closed-and-drained.
func (b *Builder) Recv(ch *conduit.Channel[any], fn func(any)) *Builder {
	b.cases = append(b.cases, conduit.RecvCase(ch))
	b.kind = append(b.kind, kindRecv)
	b.recvFuncs = append(b.recvFuncs, func() bool {
		r := ch.TryRecv()
		if r.Ok() {
			fn(r.Value)
			return true
		}
		return r.Closed()
	})
	return b
}

// Send adds a send branch offering v to ch. fn is called once the send
// actually lands.
func (b *Builder) Send(ch *conduit.Channel[any], v any, fn func()) *Builder {
	b.cases = append(b.cases, conduit.SendCase(ch, v))
	b.kind = append(b.kind, kindSend)
	b.recvFuncs = append(b.recvFuncs, func() bool {
		if ch.TrySend(v).Ok() {
			fn()
			return true
		}
		return false
	})
	return b
}

// Wait blocks until one branch's operation actually completes, then runs
// its callback. timeout == 0 waits forever. A recv branch whose channel is
// found closed and drained also ends the wait, returning true without
// running its callback. It returns false if timeout elapsed or every case
// is a send branch on a closed channel.
func (b *Builder) Wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		idx, ready := conduit.SelectWait(remaining(timeout, deadline), b.cases...)
		if !ready {
			return false
		}
		if b.recvFuncs[idx]() {
			return true
		}
		// Lost the race for that branch; loop and select again.
		if timeout > 0 && !time.Now().Before(deadline) {
			return false
		}
	}
}

// Poll checks every branch once without blocking and runs the first ready
// one's callback. Returns false if none was ready, or if the ready
// branch's operation did not complete. A recv branch on a closed, drained
// channel returns true without running its callback.
func (b *Builder) Poll() bool {
	idx, ready := conduit.SelectPoll(b.cases...)
	if !ready {
		return false
	}
	return b.recvFuncs[idx]()
}

func remaining(timeout time.Duration, deadline time.Time) time.Duration {
	if timeout <= 0 {
		return 0
	}
	left := time.Until(deadline)
	if left < 0 {
		return time.Nanosecond
	}
	return left
}
