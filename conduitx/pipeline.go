package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// FromSlice returns a channel that emits each element of items in order,
// then closes. Closes immediately if items is empty.
func FromSlice[T any](ctx context.Context, items []T) *conduit.Channel[T] {
	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)
	go func() {
		defer out.Close()
		for _, v := range items {
			if sendOrDone(out, v, done) {
				return
			}
		}
	}()
	return out
}

// Singleton returns a channel that emits v once, then closes.
func Singleton[T any](v T) *conduit.Channel[T] {
	out := conduit.NewBufferedChannel[T](1)
	out.Send(v)
	out.Close()
	return out
}

// Empty returns an already-closed channel of type T.
func Empty[T any]() *conduit.Channel[T] {
	out := conduit.NewChannel[T]()
	out.Close()
	return out
}

// ForEach calls fn for every value received from in, in order, until in
// closes or ctx is cancelled. It returns ctx.Err() if cancelled, or nil if
// in ran to completion.
func ForEach[T any](ctx context.Context, in *conduit.Channel[T], fn func(T)) error {
	done := ctxDone(ctx)
	for {
		v, ok, cancelled := recvOrDone(in, done)
		if cancelled {
			return ctx.Err()
		}
		if !ok {
			return nil
		}
		fn(v)
	}
}

// Pipe copies every value from in to out until in closes or ctx is
// cancelled, then closes out. It is the identity pipeline stage, useful
// for stitching a producer directly to a consumer's expected channel type
// without an intermediate Map.
func Pipe[T any](ctx context.Context, in, out *conduit.Channel[T]) {
	done := ctxDone(ctx)
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
}
