package conduit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_ObservesSendAndRecv(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewMetricsCollector(reg)
	ch := NewBufferedChannel[int](1, WithMetrics[int](collector))

	require.True(t, ch.Send(1).Ok())
	_, ok := ch.Recv()
	require.True(t, ok)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	var found bool
	for _, f := range families {
		if f.GetName() == "conduit_channel_ops_total" {
			found = true
		}
	}
	assert.True(t, found, "expected conduit_channel_ops_total to be registered and populated")
}

func TestMetricsCollector_ObservesChannelLen(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewMetricsCollector(reg)
	ch := NewBufferedChannel[int](4, WithMetrics[int](collector))

	require.True(t, ch.Send(1).Ok())
	require.True(t, ch.Send(2).Ok())

	families, err := reg.Gather()
	require.NoError(t, err)

	var gauge *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "conduit_channel_len" {
			gauge = f
		}
	}
	require.NotNil(t, gauge, "expected conduit_channel_len to be registered")
	require.Len(t, gauge.Metric, 1)
	assert.Equal(t, float64(2), gauge.Metric[0].GetGauge().GetValue())
}

func TestMetricsCollector_ObservesSelectWaitDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewMetricsCollector(reg)
	a := NewChannel[int](WithMetrics[int](collector))
	b := NewChannel[int]()

	go func() { a.Send(1) }()

	idx, ok := SelectWait(0, RecvCase(b), RecvCase(a))
	require.True(t, ok)
	require.Equal(t, 1, idx)

	families, err := reg.Gather()
	require.NoError(t, err)

	var hist *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "conduit_select_wait_duration_seconds" {
			hist = f
		}
	}
	require.NotNil(t, hist, "expected conduit_select_wait_duration_seconds to be registered")
	require.Len(t, hist.Metric, 1)
	assert.GreaterOrEqual(t, hist.Metric[0].GetHistogram().GetSampleCount(), uint64(1))
}

func TestChannel_WithoutMetricsDoesNotPanic(t *testing.T) {
	ch := NewChannel[int]()
	assert.NotPanics(t, func() {
		go ch.Send(1)
		ch.Recv()
		ch.Close()
	})
}
