package conduitx

import (
	"context"
	"time"

	"github.com/baxromumarov/conduit"
)

// tickerChannel bridges a time.Ticker into a Conduit channel so its ticks
// can take part in a [conduit.SelectWait] alongside data channels. Ticks
// are best-effort: if the consumer isn't ready for one, it is dropped
// rather than queued, which is what a ticker itself already does.
func tickerChannel(ticker *time.Ticker, done *conduit.Channel[struct{}]) *conduit.Channel[struct{}] {
	out := conduit.NewBufferedChannel[struct{}](1)
	go func() {
		for {
			select {
			case <-ticker.C:
				out.TrySend(struct{}{})
			case <-doneNative(done):
				return
			}
		}
	}()
	return out
}

// doneNative bridges a Conduit signal channel back into a native channel
// for the rare case (like a time.Ticker loop) that must sit in a plain Go
// select alongside stdlib timer channels.
func doneNative(done *conduit.Channel[struct{}]) <-chan struct{} {
	native := make(chan struct{})
	go func() {
		done.Recv()
		close(native)
	}()
	return native
}

// Throttle rate-limits values from in to at most n items per duration,
// using a token bucket: n tokens are available initially and a ticker
// fires every per/n interval. A tick adds a token only while Throttle is
// waiting for one, or right after a send (at most one pending tick is
// kept), so an idle period does not refill the bucket back to n. Throttle
// panics if n or per is not positive.
func Throttle[T any](ctx context.Context, in *conduit.Channel[T], n int, per time.Duration) *conduit.Channel[T] {
	if n <= 0 {
		panic("conduitx: Throttle requires n > 0")
	}
	if per <= 0 {
		panic("conduitx: Throttle requires per > 0")
	}

	out := conduit.NewChannel[T]()
	done := ctxDone(ctx)

	go func() {
		defer out.Close()

		ticker := time.NewTicker(per / time.Duration(n))
		defer ticker.Stop()
		ticks := tickerChannel(ticker, done)

		tokens := n
		for {
			if tokens == 0 {
				idx, ready := conduit.SelectWait(0, conduit.RecvCase(done), conduit.RecvCase(ticks))
				if !ready || idx == 0 {
					return
				}
				if ticks.TryRecv().Ok() {
					tokens++
				}
				continue
			}

			v, ok, cancelled := recvOrDone(in, done)
			if cancelled {
				return
			}
			if !ok {
				return
			}
			tokens--
			if sendOrDone(out, v, done) {
				return
			}
			if ticks.TryRecv().Ok() && tokens < n {
				tokens++
			}
		}
	}()
	return out
}
