package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Pair holds two values zipped together from two channels.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip combines values from two channels pairwise, emitting one Pair for
// each value received from both chA and chB. The output closes when
// either input closes or ctx is cancelled.
func Zip[A, B any](ctx context.Context, chA *conduit.Channel[A], chB *conduit.Channel[B]) *conduit.Channel[Pair[A, B]] {
	out := conduit.NewChannel[Pair[A, B]]()
	done := ctxDone(ctx)

	go func() {
		defer out.Close()
		for {
			a, ok, cancelled := recvOrDone(chA, done)
			if cancelled || !ok {
				return
			}
			b, ok, cancelled := recvOrDone(chB, done)
			if cancelled || !ok {
				return
			}
			if sendOrDone(out, Pair[A, B]{First: a, Second: b}, done) {
				return
			}
		}
	}()

	return out
}
