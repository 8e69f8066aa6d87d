package conduit

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector publishes Prometheus instrumentation for every Channel
// it is attached to via [WithMetrics]. Register one collector with your
// registry and share it across every channel you want observed; a channel
// created without WithMetrics costs nothing beyond a nil check.
type MetricsCollector struct {
	ops        *prometheus.CounterVec
	length     *prometheus.GaugeVec
	selectWait prometheus.Histogram
}

// NewMetricsCollector builds a collector and registers it with reg. Pass
// nil to register with prometheus.DefaultRegisterer.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &MetricsCollector{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conduit_channel_ops_total",
			Help: "Count of Conduit channel operations by kind and outcome.",
		}, []string{"channel", "op", "result"}),
		length: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "conduit_channel_len",
			Help: "Number of values currently buffered in a Conduit channel.",
		}, []string{"channel"}),
		selectWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conduit_select_wait_duration_seconds",
			Help:    "Time SelectWait spent parked before a case became ready or it gave up.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.ops, c.length, c.selectWait)
	return c
}

func (c *MetricsCollector) forChannel(id uuid.UUID) *channelMetrics {
	if c == nil {
		return nil
	}
	return &channelMetrics{collector: c, label: id.String()}
}

// channelMetrics binds a MetricsCollector to one channel's label. Every
// method is nil-receiver safe so a channel created without WithMetrics can
// call them unconditionally.
type channelMetrics struct {
	collector *MetricsCollector
	label     string
}

func (m *channelMetrics) observeSend(r SendResult) {
	if m == nil {
		return
	}
	m.collector.ops.WithLabelValues(m.label, "send", r.String()).Inc()
}

func (m *channelMetrics) observeRecv(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "closed"
	}
	m.collector.ops.WithLabelValues(m.label, "recv", result).Inc()
}

func (m *channelMetrics) observeTrySend(r TrySendResult) {
	if m == nil {
		return
	}
	m.collector.ops.WithLabelValues(m.label, "try_send", r.String()).Inc()
}

func (m *channelMetrics) observeTryRecv(s tryStatus) {
	if m == nil {
		return
	}
	var result string
	switch s {
	case tryStatusOK:
		result = "ok"
	case tryStatusEmpty:
		result = "empty"
	case tryStatusClosed:
		result = "closed"
	default:
		result = "invalid"
	}
	m.collector.ops.WithLabelValues(m.label, "try_recv", result).Inc()
}

func (m *channelMetrics) observeSendTimeout(s sendTimeoutStatus) {
	if m == nil {
		return
	}
	var result string
	switch s {
	case sendTimeoutOK:
		result = "ok"
	case sendTimeoutClosed:
		result = "closed"
	case sendTimeoutTimedOut:
		result = "timeout"
	default:
		result = "invalid"
	}
	m.collector.ops.WithLabelValues(m.label, "send_timeout", result).Inc()
}

func (m *channelMetrics) observeRecvTimeout(s recvTimeoutStatus) {
	if m == nil {
		return
	}
	var result string
	switch s {
	case recvTimeoutOK:
		result = "ok"
	case recvTimeoutClosed:
		result = "closed"
	case recvTimeoutTimedOut:
		result = "timeout"
	default:
		result = "invalid"
	}
	m.collector.ops.WithLabelValues(m.label, "recv_timeout", result).Inc()
}

func (m *channelMetrics) observeClose() {
	if m == nil {
		return
	}
	m.collector.ops.WithLabelValues(m.label, "close", "ok").Inc()
}

func (m *channelMetrics) observeLen(n int) {
	if m == nil {
		return
	}
	m.collector.length.WithLabelValues(m.label).Set(float64(n))
}

func (m *channelMetrics) observeSelectWaitSeconds(seconds float64) {
	if m == nil {
		return
	}
	m.collector.selectWait.Observe(seconds)
}
