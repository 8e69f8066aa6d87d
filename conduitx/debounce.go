package conduitx

import (
	"context"
	"time"

	"github.com/baxromumarov/conduit"
)

// Debounce emits the last value received from in after a quiet period of
// duration d. Each new value resets the timer. The output channel is
// closed when in is closed or ctx is cancelled. Debounce panics if
// d <= 0.
func Debounce[T any](ctx context.Context, in *conduit.Channel[T], d time.Duration) *conduit.Channel[T] {
	if d <= 0 {
		panic("conduitx: Debounce requires d > 0")
	}

	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)
	nativeIn := toNative(in)

	go func() {
		defer out.Close()
		var timer *time.Timer
		var timerC <-chan time.Time
		var latest T
		var hasValue bool

		for {
			select {
			case v, ok := <-nativeIn:
				if !ok {
					if hasValue {
						sendOrDone(out, latest, done)
					}
					return
				}
				latest = v
				hasValue = true
				if timer == nil {
					timer = time.NewTimer(d)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timerC:
						default:
						}
					}
					timer.Reset(d)
				}
			case <-timerC:
				if hasValue {
					if sendOrDone(out, latest, done) {
						return
					}
					hasValue = false
					timerC = nil
					timer = nil
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
