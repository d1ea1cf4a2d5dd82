package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/abrilera/tangopulse/internal/adapter/metrics"
	"github.com/abrilera/tangopulse/internal/app"
	"github.com/abrilera/tangopulse/internal/cache"
	"github.com/abrilera/tangopulse/internal/platform/config"
	"github.com/abrilera/tangopulse/internal/ratelimit"
	"github.com/abrilera/tangopulse/internal/scoring"
)

// testQuota is the per-minute budget configured for openai/gpt-4o in tests.
const testQuota = 3

func newTestServer(t *testing.T) (*Server, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	cfg := &config.Config{
		AppEnv:             "test",
		Port:               "0",
		CacheTTL:           time.Minute,
		CacheSweepInterval: 5 * time.Minute,
		TrendingWindow:     24 * time.Hour,
		MaxPostAge:         7 * 24 * time.Hour,
		HTTPRatePerSecond:  1000,
		HTTPRateBurst:      1000,
	}

	store := app.NewPostStore(clock, cfg.MaxPostAge)
	service := app.NewService(store, scoring.NewTrendDetector(clock), clock)

	limitsCfg, err := ratelimit.NewConfig(map[ratelimit.Key]ratelimit.Limits{
		{Platform: "openai", Model: "gpt-4o"}: {RequestsPerMinute: testQuota},
	})
	require.NoError(t, err)
	limiter := ratelimit.NewLimiter(limitsCfg, clock)

	registry := metrics.NewRegistry()
	m := Metrics{
		HTTP:    metrics.NewHTTPMetrics(registry),
		Cache:   metrics.NewCacheMetrics(registry),
		Limiter: metrics.NewLimiterMetrics(registry),
		Scoring: metrics.NewScoringMetrics(registry),
	}

	srv := NewServer(cfg, service, limiter, cache.New(clock), m, metrics.Handler(registry), nil)
	return srv, clock
}

func doRequest(t *testing.T, srv *Server, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
