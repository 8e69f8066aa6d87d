package conduitx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// First returns a channel that delivers the first value received from any
// of the input channels, then closes. If no channels are provided, the
// returned channel is closed immediately. If ctx is cancelled before any
// value arrives, the returned channel closes with no value.
func First[T any](ctx context.Context, chs ...*conduit.Channel[T]) *conduit.Channel[T] {
	out := conduit.NewBufferedChannel[T](1)

	if len(chs) == 0 {
		out.Close()
		return out
	}

	go func() {
		defer out.Close()

		done := ctxDone(ctx)
		cases := make([]conduit.SelectCase, 0, len(chs)+1)
		cases = append(cases, conduit.RecvCase(done))
		for _, ch := range chs {
			cases = append(cases, conduit.RecvCase(ch))
		}

		for {
			idx, ready := conduit.SelectWait(0, cases...)
			if !ready || idx == 0 {
				return
			}
			r := chs[idx-1].TryRecv()
			switch {
			case r.Ok():
				out.Send(r.Value)
				return
			case r.Closed():
				// This channel is done; keep waiting on the rest by
				// dropping it from the case list.
				chs = append(chs[:idx-1], chs[idx:]...)
				cases = append(cases[:idx], cases[idx+1:]...)
				if len(chs) == 0 {
					return
				}
			default:
				// Lost the race for the value to another receiver.
			}
		}
	}()
	return out
}
