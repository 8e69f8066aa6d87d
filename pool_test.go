package conduit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 4)
	var count atomic.Int64

	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(func() error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Close())
	assert.EqualValues(t, 20, count.Load())
}

func TestWorkerPool_CollectsTaskErrors(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2)
	boom := errors.New("boom")

	require.NoError(t, pool.Submit(func() error { return boom }))
	err := pool.Close()
	assert.ErrorIs(t, err, boom)
}

func TestWorkerPool_ConvertsPanicsToErrors(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1)
	require.NoError(t, pool.Submit(func() error {
		panic("kaboom")
	}))

	err := pool.Close()
	require.Error(t, err)
	var panicErr *PanicError
	assert.ErrorAs(t, err, &panicErr)
}

func TestWorkerPool_SubmitAfterCloseFails(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1)
	require.NoError(t, pool.Close())
	assert.ErrorIs(t, pool.Submit(func() error { return nil }), ErrPoolClosed)
}

func TestWorkerPool_ContextCancellationStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkerPool(ctx, 2, WithQueueSize(10))

	var started atomic.Int64
	block := make(chan struct{})
	require.NoError(t, pool.Submit(func() error {
		started.Add(1)
		<-block
		return nil
	}))

	time.Sleep(10 * time.Millisecond)
	cancel()
	close(block)

	done := make(chan struct{})
	go func() {
		pool.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not shut down after context cancellation")
	}
}

func TestWorkerPool_TrySubmitFailsWhenQueueFull(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, WithQueueSize(1))
	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() error { close(started); <-block; return nil }))
	// Wait until the worker has taken the blocking task off the queue.
	<-started
	require.True(t, pool.TrySubmit(func() error { return nil }))
	assert.False(t, pool.TrySubmit(func() error { return nil }))
	close(block)
	pool.Close()
}
