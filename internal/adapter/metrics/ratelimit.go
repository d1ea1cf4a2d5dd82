package metrics

import "github.com/prometheus/client_golang/prometheus"

// LimiterMetrics holds Prometheus metrics for the provider token-bucket limiter.
type LimiterMetrics struct {
	Admissions *prometheus.CounterVec
	Tokens     *prometheus.GaugeVec
}

// NewLimiterMetrics creates and registers limiter metrics on the given registry.
func NewLimiterMetrics(reg prometheus.Registerer) *LimiterMetrics {
	m := &LimiterMetrics{
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "admissions_total",
			Help:      "Total admission decisions per provider model, by result.",
		}, []string{"platform", "model", "result"}),
		Tokens: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "tokens",
			Help:      "Current floored token count per provider model bucket.",
		}, []string{"platform", "model"}),
	}

	reg.MustRegister(m.Admissions, m.Tokens)
	return m
}
