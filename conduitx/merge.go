package conduitx

import (
	"context"
	"sync"

	"github.com/baxromumarov/conduit"
)

// Merge combines multiple input channels into a single output channel
// (fan-in). The output channel is closed once every input is closed or
// closed early if ctx is cancelled. The order of values is
// non-deterministic.
func Merge[T any](ctx context.Context, chs ...*conduit.Channel[T]) *conduit.Channel[T] {
	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)

	var wg sync.WaitGroup
	for _, ch := range chs {
		ch := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok, cancelled := recvOrDone(ch, done)
				if cancelled || !ok {
					return
				}
				if sendOrDone(out, v, done) {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		out.Close()
	}()

	return out
}

// FanOut distributes values from in across n output channels in
// round-robin order. FanOut panics if n is not positive.
func FanOut[T any](ctx context.Context, in *conduit.Channel[T], n int) []*conduit.Channel[T] {
	if n <= 0 {
		panic("conduitx: FanOut requires n > 0")
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
		idx := 0
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			if sendOrDone(outs[idx%n], v, done) {
				return
			}
			idx++
		}
	}()

	return outs
}
