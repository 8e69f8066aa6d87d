package conduit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRace_ReturnsFirstSuccess(t *testing.T) {
	val, err := Race(context.Background(),
		func(ctx context.Context) (int, error) {
			time.Sleep(50 * time.Millisecond)
			return 1, nil
		},
		func(ctx context.Context) (int, error) {
			return 2, nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, val)
}

func TestRace_ReturnsLastErrorWhenAllFail(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	_, err := Race(context.Background(),
		func(ctx context.Context) (int, error) { return 0, errA },
		func(ctx context.Context) (int, error) { return 0, errB },
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errA) || errors.Is(err, errB))
}

func TestRace_EmptyTasksReturnsZero(t *testing.T) {
	val, err := Race[int](context.Background())
	assert.NoError(t, err)
	assert.Zero(t, val)
}

func TestRace_NilTaskPanics(t *testing.T) {
	assert.Panics(t, func() {
		Race[int](context.Background(), nil)
	})
}
