package conduit

import "context"

// Result holds the outcome of an asynchronous task that produces a typed
// value. Create one via [SpawnResult].
type Result[T any] struct {
	ch *Channel[asyncResult[T]]
}

type asyncResult[T any] struct {
	val T
	err error
}

// SpawnResult runs fn in its own goroutine and wraps its outcome in a
// [Result]. A panic inside fn is recovered and reported as a *[PanicError].
//
//	r := conduit.SpawnResult(ctx, func(ctx context.Context) (int, error) {
//		return expensiveCalc(ctx)
//	})
//	val, err := r.Wait()
func SpawnResult[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Result[T] {
	r := &Result[T]{ch: NewBufferedChannel[asyncResult[T]](1)}

	go func() {
		var zero T
		var res asyncResult[T]
		func() {
			defer func() {
				if p := recover(); p != nil {
					res = asyncResult[T]{zero, newPanicError(p)}
				}
			}()
			v, err := fn(ctx)
			res = asyncResult[T]{v, err}
		}()
		r.ch.Send(res)
	}()

	return r
}

// Wait blocks until the task completes and returns its value and error.
func (r *Result[T]) Wait() (T, error) {
	res, _ := r.ch.Recv()
	return res.val, res.err
}

// Done returns a channel that becomes ready to receive once the task
// completes, suitable for use in [SelectWait] alongside other cases.
func (r *Result[T]) Done() *Channel[asyncResult[T]] {
	return r.ch
}
