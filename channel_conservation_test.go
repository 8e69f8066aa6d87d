package conduit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every value sent is received exactly once, even under heavy concurrent
// send/recv pressure on a small buffer.
func TestChannel_ConservationUnderConcurrency(t *testing.T) {
	const senders = 8
	const perSender = 200
	ch := NewBufferedChannel[int](16)

	var wg sync.WaitGroup
	wg.Add(senders)
	for s := 0; s < senders; s++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				ch.Send(base*perSender + i)
			}
		}(s)
	}

	received := make([]bool, senders*perSender)
	var mu sync.Mutex
	var recvWg sync.WaitGroup
	recvWg.Add(senders)
	for r := 0; r < senders; r++ {
		go func() {
			defer recvWg.Done()
			for i := 0; i < perSender; i++ {
				v, ok := ch.Recv()
				if !ok {
					return
				}
				mu.Lock()
				received[v] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	recvWg.Wait()

	for i, seen := range received {
		assert.True(t, seen, "value %d never delivered", i)
	}
}

func TestChannel_LenReflectsBufferedCount(t *testing.T) {
	ch := NewBufferedChannel[int](5)
	assert.Equal(t, 0, ch.Len())
	ch.Send(1)
	ch.Send(2)
	assert.Equal(t, 2, ch.Len())
	ch.Recv()
	assert.Equal(t, 1, ch.Len())
}

func TestChannel_LenOnUnbufferedReflectsPendingOffer(t *testing.T) {
	ch := NewChannel[int]()
	assert.Equal(t, 0, ch.Len())
	go ch.Send(1)
	// Wait for the sender to publish the offer; it counts as one value.
	require.Eventually(t, func() bool { return ch.Len() == 1 }, time.Second, time.Millisecond)
	v, ok := ch.Recv()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, ch.Len())
}
