// Package conduitx provides context-aware combinators over
// [conduit.Channel]: transforms, fan-in/fan-out, rate limiting, batching,
// and other pipeline building blocks used to assemble larger data flows
// out of the core send/recv/select primitives.
//
// Every combinator that spawns a goroutine is tied to a context.Context so
// it always terminates: on cancellation, in-flight work is abandoned and
// output channels are closed rather than left dangling.
package conduitx

import (
	"context"
	"time"

	"github.com/baxromumarov/conduit"
)

// ctxDone returns a channel that closes the moment ctx is done. The
// combinators in this package wait on it (through recvOrDone/sendOrDone)
// instead of touching ctx.Done() directly, so cancellation is just another
// Conduit channel. The timer-driven ones (Debounce, Window, Buffer) also
// select on ctx.Done() directly in their native select loops.
func ctxDone(ctx context.Context) *conduit.Channel[struct{}] {
	done := conduit.NewChannel[struct{}]()
	go func() {
		<-ctx.Done()
		done.Close()
	}()
	return done
}

// recvOrDone receives from in, giving priority to done whenever both are
// ready. ok is false when in is closed and drained; cancelled is true when
// done fired first.
func recvOrDone[T any](in *conduit.Channel[T], done *conduit.Channel[struct{}]) (v T, ok bool, cancelled bool) {
	if in.Capacity() == 0 {
		// An unbuffered send-case only turns ready while a receiver is
		// parked on the channel, which a select never is. Park in short
		// timed receives instead, checking done between them.
		for {
			if done.IsClosed() {
				return v, false, true
			}
			switch r := in.RecvTimeout(10 * time.Millisecond); {
			case r.Ok():
				return r.Value, true, false
			case r.Closed():
				return v, false, false
			}
		}
	}
	for {
		idx, ready := conduit.SelectWait(0, conduit.RecvCase(done), conduit.RecvCase(in))
		if !ready {
			var zero T
			return zero, false, false
		}
		if idx == 0 {
			var zero T
			return zero, false, true
		}
		r := in.TryRecv()
		switch {
		case r.Ok():
			return r.Value, true, false
		case r.Closed():
			var zero T
			return zero, false, false
		default:
			continue // lost the race to another receiver, try again
		}
	}
}

// sendOrDone sends v to out, giving priority to done whenever both are
// ready. cancelled is true when done fired before the send could land.
func sendOrDone[T any](out *conduit.Channel[T], v T, done *conduit.Channel[struct{}]) (cancelled bool) {
	for {
		idx, ready := conduit.SelectWait(0, conduit.RecvCase(done), conduit.SendCase(out, v))
		if !ready {
			return false
		}
		if idx == 0 {
			return true
		}
		switch r := out.TrySend(v); {
		case r.Ok():
			return false
		case r.Closed():
			return false
		default:
			continue // lost the race for the receiver, try again
		}
	}
}

// toNative bridges a Conduit channel's values onto a native Go channel,
// closing it once in is closed and drained. Some combinators (Debounce,
// Window, Buffer) interleave input values with stdlib timers in a plain Go
// select, which can only ever wait on native channels; this pump is the
// one place that crosses from Conduit's own condvar-based blocking back
// into the runtime's.
func toNative[T any](in *conduit.Channel[T]) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			v, ok := in.Recv()
			if !ok {
				return
			}
			out <- v
		}
	}()
	return out
}

// Send sends v to ch, unblocking early if ctx is cancelled. It returns nil
// on successful send, or the context error if cancelled.
func Send[T any](ctx context.Context, ch *conduit.Channel[T], v T) error {
	if cancelled := sendOrDone(ch, v, ctxDone(ctx)); cancelled {
		return ctx.Err()
	}
	return nil
}

// Recv receives a value from ch, unblocking early if ctx is cancelled. The
// second return value is false once ch is closed and drained.
func Recv[T any](ctx context.Context, ch *conduit.Channel[T]) (T, bool, error) {
	v, ok, cancelled := recvOrDone(ch, ctxDone(ctx))
	if cancelled {
		return v, false, ctx.Err()
	}
	return v, ok, nil
}

// SendBatch sends each value in values to ch, stopping on the first
// context cancellation.
func SendBatch[T any](ctx context.Context, ch *conduit.Channel[T], values []T) error {
	for _, v := range values {
		if err := Send(ctx, ch, v); err != nil {
			return err
		}
	}
	return nil
}

// RecvBatch receives up to n values from ch. If ch is closed before n
// values are received, it returns the values received so far with a nil
// error. RecvBatch panics if n is not positive.
func RecvBatch[T any](ctx context.Context, ch *conduit.Channel[T], n int) ([]T, error) {
	if n <= 0 {
		panic("conduitx: RecvBatch requires n > 0")
	}
	result := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, ok, err := Recv(ctx, ch)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, v)
	}
	return result, nil
}
