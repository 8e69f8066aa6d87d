package conduitx

import (
	"context"
	"time"

	"github.com/baxromumarov/conduit"
)

// WindowMode specifies whether the window is tumbling or sliding.
type WindowMode int

const (
	// Tumbling windows are non-overlapping: each item belongs to exactly
	// one window.
	Tumbling WindowMode = iota
	// Sliding windows are emitted once per duration; each emitted batch
	// contains all items received within the last duration.
	Sliding
)

// Window collects items from in into time-based windows and emits each
// completed window as a slice. Window panics if duration <= 0.
func Window[T any](ctx context.Context, in *conduit.Channel[T], duration time.Duration, mode WindowMode) *conduit.Channel[[]T] {
	if duration <= 0 {
		panic("conduitx: Window requires duration > 0")
	}

	out := conduit.NewChannel[[]T]()
	switch mode {
	case Tumbling:
		go windowTumbling(ctx, in, out, duration)
	case Sliding:
		go windowSliding(ctx, in, out, duration)
	default:
		panic("conduitx: unknown WindowMode")
	}
	return out
}

func windowTumbling[T any](ctx context.Context, in *conduit.Channel[T], out *conduit.Channel[[]T], duration time.Duration) {
	defer out.Close()
	done := ctxDone(ctx)
	nativeIn := toNative(in)

	ticker := time.NewTicker(duration)
	defer ticker.Stop()

	var batch []T
	for {
		select {
		case v, ok := <-nativeIn:
			if !ok {
				if len(batch) > 0 {
					sendOrDone(out, batch, done)
				}
				return
			}
			batch = append(batch, v)
		case <-ticker.C:
			if len(batch) > 0 {
				if sendOrDone(out, batch, done) {
					return
				}
				batch = nil
			}
		case <-ctx.Done():
			return
		}
	}
}

type timestamped[T any] struct {
	val  T
	when time.Time
}

func windowSliding[T any](ctx context.Context, in *conduit.Channel[T], out *conduit.Channel[[]T], duration time.Duration) {
	defer out.Close()
	done := ctxDone(ctx)
	nativeIn := toNative(in)

	ticker := time.NewTicker(duration)
	defer ticker.Stop()

	var items []timestamped[T]
	for {
		select {
		case v, ok := <-nativeIn:
			if !ok {
				if len(items) > 0 {
					cutoff := time.Now().Add(-duration)
					var batch []T
					for _, item := range items {
						if !item.when.Before(cutoff) {
							batch = append(batch, item.val)
						}
					}
					if len(batch) > 0 {
						sendOrDone(out, batch, done)
					}
				}
				return
			}
			items = append(items, timestamped[T]{val: v, when: time.Now()})
		case <-ticker.C:
			cutoff := time.Now().Add(-duration)
			start := 0
			for start < len(items) && items[start].when.Before(cutoff) {
				start++
			}
			items = items[start:]

			if len(items) > 0 {
				batch := make([]T, len(items))
				for i, item := range items {
					batch[i] = item.val
				}
				if sendOrDone(out, batch, done) {
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
