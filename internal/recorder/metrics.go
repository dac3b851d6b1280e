package recorder

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks received events and the depth of the server queue.
type Metrics struct {
	events *prometheus.CounterVec
	depth  prometheus.Gauge
}

// NewMetrics creates the recorder metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codeeraser",
			Subsystem: "recorder",
			Name:      "events_total",
			Help:      "Number of decoded recording events by kind.",
		}, []string{"kind"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "codeeraser",
			Subsystem: "recorder",
			Name:      "queue_depth",
			Help:      "Number of events waiting for the strategy.",
		}),
	}

	reg.MustRegister(m.events, m.depth)

	return m
}

func (m *Metrics) received(k Kind) {
	m.events.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) queued(depth int) {
	m.depth.Set(float64(depth))
}
