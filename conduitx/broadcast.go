package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Broadcast is a buffered variant of [Tee] that reduces slow-consumer
// blocking. Each output channel has an independent buffer of bufSize.
// Broadcast panics if bufSize <= 0 or n <= 0.
func Broadcast[T any](ctx context.Context, in *conduit.Channel[T], n int, bufSize int) []*conduit.Channel[T] {
	if n <= 0 {
		panic("conduitx: Broadcast requires n > 0")
	}
	if bufSize <= 0 {
		panic("conduitx: Broadcast requires bufSize > 0")
	}

	outs := make([]*conduit.Channel[T], n)
	for i := range outs {
		outs[i] = conduit.NewBufferedChannel[T](bufSize)
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
