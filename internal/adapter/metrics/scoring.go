package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScoringMetrics holds Prometheus metrics for the heuristic scorers.
type ScoringMetrics struct {
	Predictions      *prometheus.CounterVec
	ScoringDuration  *prometheus.HistogramVec
	PostsIngested    prometheus.Counter
	TrendingTopicCnt prometheus.Gauge
}

// NewScoringMetrics creates and registers scorer metrics on the given registry.
func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	m := &ScoringMetrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "predictions_total",
			Help:      "Total scoring calls, by scorer.",
		}, []string{"scorer"}),
		ScoringDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "duration_seconds",
			Help:      "Duration of scoring calls in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"scorer"}),
		PostsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "posts_ingested_total",
			Help:      "Total posts accepted into the in-memory store.",
		}),
		TrendingTopicCnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "trending_topics",
			Help:      "Number of topics returned by the latest trend detection.",
		}),
	}

	reg.MustRegister(m.Predictions, m.ScoringDuration, m.PostsIngested, m.TrendingTopicCnt)
	return m
}
