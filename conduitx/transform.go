package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Map transforms values from in by applying fn and sends the results to
// the returned channel. The output channel is closed when in is closed or
// ctx is cancelled.
func Map[T, U any](ctx context.Context, in *conduit.Channel[T], fn func(T) U) *conduit.Channel[U] {
	out := conduit.NewChannel[U]()
	done := ctxDone(ctx)

	go func() {
		defer out.Close()
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			if sendOrDone(out, fn(v), done) {
				return
			}
		}
	}()
	return out
}

// Filter passes values from in to the returned channel only if fn returns
// true. The output channel is closed when in is closed or ctx is
// cancelled.
func Filter[T any](ctx context.Context, in *conduit.Channel[T], fn func(T) bool) *conduit.Channel[T] {
	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)

	go func() {
		defer out.Close()
		for {
			v, ok, cancelled := recvOrDone(in, done)
			if cancelled || !ok {
				return
			}
			if !fn(v) {
				continue
			}
			if sendOrDone(out, v, done) {
				return
			}
		}
	}()
	return out
}
