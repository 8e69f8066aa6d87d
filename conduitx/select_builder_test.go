package conduitx

import (
	"testing"
	"time"

	"github.com/baxromumarov/conduit"
	"github.com/stretchr/testify/assert"
)

func TestSelectBuilder_RecvBranchFires(t *testing.T) {
	ch := conduit.NewBufferedChannel[any](1)
	ch.Send(5)

	var got any
	fired := Select().
		Recv(ch, func(v any) { got = v }).
		Wait(time.Second)

	assert.True(t, fired)
	assert.Equal(t, 5, got)
}

func TestSelectBuilder_PollReturnsFalseWhenNothingReady(t *testing.T) {
	ch := conduit.NewChannel[any]()
	assert.False(t, Select().Recv(ch, func(any) {}).Poll())
}
