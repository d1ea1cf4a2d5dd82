// Package httpserver exposes the scorers, the response cache and the
// provider limiter over a JSON HTTP API.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/abrilera/tangopulse/internal/adapter/metrics"
	"github.com/abrilera/tangopulse/internal/cache"
	"github.com/abrilera/tangopulse/internal/domain"
	"github.com/abrilera/tangopulse/internal/platform/config"
)

// insightsService is the subset of app operations the handlers need.
type insightsService interface {
	IngestPosts(posts []domain.Post) int
	AuthorPosts(authorID uuid.UUID) []domain.Post
	TrendingTopics(window time.Duration) []domain.TrendingTopic
	PredictEngagement(post domain.PostFeatures, authorID uuid.UUID, history []domain.PostStats) domain.EngagementPrediction
	PredictAttendance(event domain.EventFeatures, organizerHistory, venueHistory []domain.EventStats) domain.AttendancePrediction
}

// providerLimiter is the admission-control surface of the token-bucket limiter.
type providerLimiter interface {
	Acquire(platform, model string) (bool, error)
	Wait(ctx context.Context, platform, model string, maxWait time.Duration) (bool, error)
	TokenCount(platform, model string) int
	Reset(platform, model string)
}

// Metrics bundles the instrument groups the server records into.
type Metrics struct {
	HTTP    *metrics.HTTPMetrics
	Cache   *metrics.CacheMetrics
	Limiter *metrics.LimiterMetrics
	Scoring *metrics.ScoringMetrics
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app     insightsService
	limiter providerLimiter
	cache   *cache.ResponseCache

	metrics        Metrics
	metricsHandler http.Handler
	healthChecks   []HealthCheck
	startTime      time.Time
}

func NewServer(cfg *config.Config, app insightsService, limiter providerLimiter, respCache *cache.ResponseCache, m Metrics, metricsHandler http.Handler, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		limiter:        limiter,
		cache:          respCache,
		metrics:        m,
		metricsHandler: metricsHandler,
		healthChecks:   healthChecks,
		startTime:      time.Now(),
	}

	srv.registerRoutes()
	return srv
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
