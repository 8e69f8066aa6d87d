package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// OrDone wraps in so that it also respects context cancellation: the
// returned channel yields values from in until in is closed or ctx is
// cancelled, whichever comes first.
func OrDone[T any](ctx context.Context, in *conduit.Channel[T]) *conduit.Channel[T] {
	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)

	go func() {
		defer out.Close()
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			if sendOrDone(out, v, done) {
				return
			}
		}
	}()
	return out
}

// Drain reads and discards all values from ch until it is closed. Use
// this to unblock a producer that is sending to a channel during
// shutdown.
func Drain[T any](ch *conduit.Channel[T]) {
	for {
		if _, ok := ch.Recv(); !ok {
			return
		}
	}
}
