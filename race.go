package conduit

import (
	"context"
	"fmt"
)

// Race runs all tasks concurrently and returns the result of the first
// task to succeed (return nil error). The contexts of remaining tasks are
// cancelled immediately upon the first success.
//
// If all tasks fail, Race returns the zero value and the last error
// observed. If ctx is cancelled before any task succeeds, Race returns
// ctx.Err().
//
// If tasks is empty, Race returns (zero, nil).
//
// Race panics if any element of tasks is nil.
func Race[T any](ctx context.Context, tasks ...func(context.Context) (T, error)) (T, error) {
	var zero T
	if len(tasks) == 0 {
		return zero, nil
	}
	for i, fn := range tasks {
		if fn == nil {
			panic(fmt.Sprintf("conduit: Race task[%d] must not be nil", i))
		}
	}

	raceCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	// Buffered so every goroutine can deposit its outcome without blocking
	// once the winner has already been picked up.
	ch := NewBufferedChannel[asyncResult[T]](len(tasks))

	for _, fn := range tasks {
		fn := fn
		go func() {
			val, err := fn(raceCtx)
			ch.Send(asyncResult[T]{val, err})
		}()
	}

	var lastErr error
	for range tasks {
		res, _ := ch.Recv()
		if res.err == nil {
			cancel(nil)
			log.WithField("tasks", len(tasks)).Debug("race: winner found")
			return res.val, nil
		}
		lastErr = res.err
	}

	log.WithField("tasks", len(tasks)).WithError(lastErr).Debug("race: all tasks failed")
	if ctx.Err() != nil {
		return zero, ctx.Err()
	}
	return zero, lastErr
}
