package conduitx

import (
	"context"
	"testing"
	"time"

	"github.com/baxromumarov/conduit"
	"github.com/stretchr/testify/assert"
)

func TestBuffer_FlushesOnSize(t *testing.T) {
	ctx := context.Background()
	in := FromSlice(ctx, []int{1, 2, 3, 4})
	out := Buffer(ctx, in, 2, time.Second)

	got := drainAll(out)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, got)
}

func TestBuffer_FlushesPartialBatchOnClose(t *testing.T) {
	ctx := context.Background()
	in := FromSlice(ctx, []int{1, 2, 3})
	out := Buffer(ctx, in, 10, time.Second)

	got := drainAll(out)
	assert.Equal(t, [][]int{{1, 2, 3}}, got)
}

func TestBufferWithReason_ReportsSizeAndClose(t *testing.T) {
	ctx := context.Background()
	in := FromSlice(ctx, []int{1, 2, 3})
	out := BufferWithReason(ctx, in, 2, time.Second)

	got := drainAll(out)
	if assert.Len(t, got, 2) {
		assert.Equal(t, FlushSize, got[0].Reason)
		assert.Equal(t, FlushClose, got[1].Reason)
	}
}

func TestThrottle_LimitsBurstToN(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	in := conduit.NewBufferedChannel[int](10)
	for i := 0; i < 10; i++ {
		in.Send(i)
	}
	in.Close()

	out := Throttle(ctx, in, 2, 100*time.Millisecond)
	first := drainAll(out)
	assert.Less(t, len(first), 10)
}
