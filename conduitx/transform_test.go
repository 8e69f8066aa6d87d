package conduitx

import (
	"context"
	"testing"

	"github.com/baxromumarov/conduit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainAll[T any](ch *conduit.Channel[T]) []T {
	var out []T
	for {
		v, ok := ch.Recv()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestMap_TransformsEveryValue(t *testing.T) {
	ctx := context.Background()
	in := FromSlice(ctx, []int{1, 2, 3})
	out := Map(ctx, in, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, drainAll(out))
}

func TestFilter_KeepsOnlyMatching(t *testing.T) {
	ctx := context.Background()
	in := FromSlice(ctx, []int{1, 2, 3, 4, 5, 6})
	out := Filter(ctx, in, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, drainAll(out))
}

func TestMap_StopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := conduit.NewChannel[int]()
	out := Map(ctx, in, func(v int) int { return v })

	cancel()
	_, ok := out.Recv()
	require.False(t, ok)
}
