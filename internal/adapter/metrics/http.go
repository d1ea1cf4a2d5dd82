package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments the API surface per method, route and status.
type HTTPMetrics struct {
	Duration *prometheus.HistogramVec
	Requests *prometheus.CounterVec
	InFlight prometheus.Gauge
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of handled HTTP requests.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being handled.",
		}),
	}

	reg.MustRegister(m.Duration, m.Requests, m.InFlight)
	return m
}

// Middleware records request counts and latencies, keyed by the matched
// route template so path parameters do not explode cardinality. Probe and
// scrape endpoints are not recorded.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if skipInstrumentation(route) {
				return next(c)
			}

			m.InFlight.Inc()
			start := time.Now()

			err := next(c)

			m.InFlight.Dec()
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			m.Duration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(method, route, status).Inc()
			return err
		}
	}
}

func skipInstrumentation(route string) bool {
	return route == "/metrics" || route == "/version" || strings.HasPrefix(route, "/health/")
}
