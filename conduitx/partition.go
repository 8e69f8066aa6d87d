package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Partition splits items from in into two channels based on fn: items for
// which fn returns true go to match, the rest go to rest. Both are closed
// when in is closed or ctx is cancelled.
//
// Callers must consume both output channels concurrently; if only one is
// read, the single dispatcher goroutine blocks on the other, same as
// [Tee]. Partition panics if fn is nil.
func Partition[T any](ctx context.Context, in *conduit.Channel[T], fn func(T) bool) (match, rest *conduit.Channel[T]) {
	if fn == nil {
		panic("conduitx: Partition requires non-nil predicate")
	}
	matchCh := conduit.NewChannel[T]()
	restCh := conduit.NewChannel[T]()
	done := ctxDone(ctx)

	go func() {
		defer matchCh.Close()
		defer restCh.Close()
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			if fn(v) {
				if sendOrDone(matchCh, v, done) {
					return
				}
			} else {
				if sendOrDone(restCh, v, done) {
					return
				}
			}
		}
	}()

	return matchCh, restCh
}
