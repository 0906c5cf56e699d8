package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the run's small prometheus collector set, registered on a
// private registry so multiple runs in one process never collide.
type Metrics struct {
	registry *prometheus.Registry

	PacketsIngested prometheus.Counter
	PacketsSampled  prometheus.Counter
	PacketsMirrored prometheus.Counter
	IterationWall   prometheus.Histogram
}

// NewMetrics constructs and registers the collector set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		PacketsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "magnifier",
			Name:      "packets_ingested_total",
			Help:      "Total packet records read from the observation store.",
		}),
		PacketsSampled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "magnifier",
			Name:      "packets_sampled_total",
			Help:      "Total packets selected by the sampler.",
		}),
		PacketsMirrored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "magnifier",
			Name:      "packets_mirrored_total",
			Help:      "Total packets that falsified an active sentinel.",
		}),
		IterationWall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "magnifier",
			Name:      "iteration_wall_seconds",
			Help:      "Wall-clock time spent per driver iteration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.PacketsIngested, m.PacketsSampled, m.PacketsMirrored, m.IterationWall)
	return m
}

// Handler serves the registry over the prometheus text exposition
// format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
