package conduitx

import (
	"context"
	"testing"

	"github.com/baxromumarov/conduit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice_EmitsAllThenCloses(t *testing.T) {
	got := drainAll(FromSlice(context.Background(), []int{1, 2, 3}))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSingleton_EmitsOneValue(t *testing.T) {
	got := drainAll(Singleton(7))
	assert.Equal(t, []int{7}, got)
}

func TestEmpty_ClosedImmediately(t *testing.T) {
	assert.Empty(t, drainAll(Empty[int]()))
}

func TestForEach_VisitsEveryValue(t *testing.T) {
	in := FromSlice(context.Background(), []int{1, 2, 3})
	var sum int
	err := ForEach(context.Background(), in, func(v int) { sum += v })
	require.NoError(t, err)
	assert.Equal(t, 6, sum)
}

func TestPipe_CopiesValuesAndClosesOut(t *testing.T) {
	in := FromSlice(context.Background(), []int{1, 2})
	out := conduit.NewChannel[int]()
	go Pipe(context.Background(), in, out)
	assert.Equal(t, []int{1, 2}, drainAll(out))
}

func TestDrain_ConsumesUntilClosed(t *testing.T) {
	in := conduit.NewBufferedChannel[int](3)
	in.Send(1)
	in.Send(2)
	in.Close()
	Drain(in)
	assert.Equal(t, 0, in.Len())
}
