package conduit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTimeout_SucceedsWhenRoomAppears(t *testing.T) {
	ch := NewBufferedChannel[int](1)
	require.True(t, ch.Send(1).Ok())

	go func() {
		time.Sleep(10 * time.Millisecond)
		ch.Recv()
	}()

	r := ch.SendTimeout(2, time.Second)
	assert.True(t, r.Ok())
}

func TestSendTimeout_TimesOutAndReturnsValue(t *testing.T) {
	ch := NewBufferedChannel[int](1)
	require.True(t, ch.Send(1).Ok())

	r := ch.SendTimeout(2, 20*time.Millisecond)
	require.True(t, r.TimedOut())
	assert.Equal(t, 2, r.Value)
}

func TestSendTimeout_ClosedChannel(t *testing.T) {
	ch := NewChannel[int]()
	ch.Close()
	r := ch.SendTimeout(1, time.Second)
	assert.True(t, r.Closed())
}

func TestSendTimeout_NonPositiveIsNonBlocking(t *testing.T) {
	ch := NewChannel[int]()
	r := ch.SendTimeout(1, 0)
	assert.True(t, r.TimedOut())
}

func TestRecvTimeout_SucceedsWhenValueArrives(t *testing.T) {
	ch := NewChannel[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		ch.Send(5)
	}()

	r := ch.RecvTimeout(time.Second)
	require.True(t, r.Ok())
	assert.Equal(t, 5, r.Value)
}

func TestRecvTimeout_TimesOut(t *testing.T) {
	ch := NewChannel[int]()
	r := ch.RecvTimeout(20 * time.Millisecond)
	assert.True(t, r.TimedOut())
}

func TestRecvTimeout_ClosedChannel(t *testing.T) {
	ch := NewChannel[int]()
	ch.Close()
	r := ch.RecvTimeout(time.Second)
	assert.True(t, r.Closed())
}

func TestSendTimeout_UnbufferedWithdrawsOfferOnTimeout(t *testing.T) {
	ch := NewChannel[int]()
	r := ch.SendTimeout(9, 20*time.Millisecond)
	require.True(t, r.TimedOut())

	// The withdrawn offer must not be visible to a later receiver.
	go ch.Send(1)
	v, ok := ch.Recv()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
