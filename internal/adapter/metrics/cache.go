package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the response cache.
type CacheMetrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Invalidations prometheus.Counter
	Size          prometheus.Gauge
}

// NewCacheMetrics creates and registers response cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "response_cache",
			Name:      "hits_total",
			Help:      "Total number of response cache hits.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "response_cache",
			Name:      "misses_total",
			Help:      "Total number of response cache misses.",
		}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "response_cache",
			Name:      "invalidations_total",
			Help:      "Total number of response cache entries invalidated.",
		}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "response_cache",
			Name:      "entries",
			Help:      "Current number of response cache entries.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Invalidations, m.Size)
	return m
}
