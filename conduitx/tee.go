package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Tee broadcasts every value from in to n independent unbuffered output
// channels. All outputs receive every value. The output channels are
// closed when in is closed or ctx is cancelled.
//
// If any consumer is slow, it blocks the broadcast to all others. Use
// [Broadcast] for independently buffered outputs.
func Tee[T any](ctx context.Context, in *conduit.Channel[T], n int) []*conduit.Channel[T] {
	if n <= 0 {
		panic("conduitx: Tee requires n > 0")
	}

	outs := make([]*conduit.Channel[T], n)
	for i := range outs {
		outs[i] = conduit.NewChannel[T]()
	}
	done := ctxDone(ctx)

	go func() {
		defer func() {
			for _, ch := range outs {
				ch.Close()
			}
		}()
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			for _, ch := range outs {
				if sendOrDone(ch, v, done) {
					return
				}
			}
		}
	}()

	return outs
}
