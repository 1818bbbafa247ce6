// Package metrics exposes Prometheus instrumentation for the asset server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manifest lookup result labels.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
	ResultDev  = "dev"
)

// Metrics holds the server's Prometheus collectors. They are registered on a
// private registry so tests can create any number of instances.
type Metrics struct {
	Registry *prometheus.Registry

	ManifestLookups *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		ManifestLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vitelink_manifest_lookups_total",
			Help: "Manifest lookups by result (hit, miss, dev).",
		}, []string{"result"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vitelink_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

// ObserveLookup records one manifest lookup outcome.
func (m *Metrics) ObserveLookup(result string) {
	m.ManifestLookups.WithLabelValues(result).Inc()
}
