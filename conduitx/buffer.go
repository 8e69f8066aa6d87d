package conduitx

import (
	"context"
	"time"

	"github.com/baxromumarov/conduit"
)

// Buffer collects values from in into slices of up to size elements. A
// batch is emitted when it reaches size elements or when timeout elapses
// since the first item in the current batch, whichever comes first. Any
// partial batch is flushed when in closes. Buffer panics if size or
// timeout is not positive.
func Buffer[T any](ctx context.Context, in *conduit.Channel[T], size int, timeout time.Duration) *conduit.Channel[[]T] {
	if size <= 0 {
		panic("conduitx: Buffer requires size > 0")
	}
	if timeout <= 0 {
		panic("conduitx: Buffer requires timeout > 0")
	}

	out := conduit.NewChannel[[]T]()
	done := ctxDone(ctx)
	nativeIn := toNative(in)

	go func() {
		defer out.Close()

		batch := make([]T, 0, size)
		var timer *time.Timer
		var timerC <-chan time.Time

		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			if sendOrDone(out, batch, done) {
				return false
			}
			batch = make([]T, 0, size)
			if timer != nil {
				timer.Stop()
				timerC = nil
			}
			return true
		}

		for {
			select {
			case v, ok := <-nativeIn:
				if !ok {
					flush()
					return
				}
				batch = append(batch, v)
				if len(batch) == 1 {
					timer = time.NewTimer(timeout)
					timerC = timer.C
				}
				if len(batch) >= size {
					if !flush() {
						return
					}
				}
			case <-timerC:
				if !flush() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// FlushReason indicates why a batch was flushed.
type FlushReason int

const (
	// FlushSize means the batch reached the configured max size.
	FlushSize FlushReason = iota
	// FlushTimeout means the timeout elapsed since the first item in the
	// batch.
	FlushTimeout
	// FlushClose means the input channel was closed with a partial batch
	// remaining.
	FlushClose
)

// BatchResult holds a flushed batch and the reason it was flushed.
type BatchResult[T any] struct {
	Items  []T
	Reason FlushReason
}

// BufferWithReason works like [Buffer] but includes the [FlushReason] with
// each emitted batch.
func BufferWithReason[T any](ctx context.Context, in *conduit.Channel[T], size int, timeout time.Duration) *conduit.Channel[BatchResult[T]] {
	if size <= 0 {
		panic("conduitx: BufferWithReason requires size > 0")
	}
	if timeout <= 0 {
		panic("conduitx: BufferWithReason requires timeout > 0")
	}

	out := conduit.NewChannel[BatchResult[T]]()
	done := ctxDone(ctx)
	nativeIn := toNative(in)

	go func() {
		defer out.Close()

		batch := make([]T, 0, size)
		var timer *time.Timer
		var timerC <-chan time.Time

		flush := func(reason FlushReason) bool {
			if len(batch) == 0 {
				return true
			}
			if sendOrDone(out, BatchResult[T]{Items: batch, Reason: reason}, done) {
				return false
			}
			batch = make([]T, 0, size)
			if timer != nil {
				timer.Stop()
				timerC = nil
			}
			return true
		}

		for {
			select {
			case v, ok := <-nativeIn:
				if !ok {
					flush(FlushClose)
					return
				}
				batch = append(batch, v)
				if len(batch) == 1 {
					timer = time.NewTimer(timeout)
					timerC = timer.C
				}
				if len(batch) >= size {
					if !flush(FlushSize) {
						return
					}
				}
			case <-timerC:
				if !flush(FlushTimeout) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
