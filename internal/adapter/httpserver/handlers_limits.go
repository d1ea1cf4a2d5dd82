package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/abrilera/tangopulse/internal/errors"
	"github.com/abrilera/tangopulse/internal/ratelimit"
)

func (s *Server) handleTokenCount(c echo.Context) error {
	platform, model := c.Param("platform"), c.Param("model")

	tokens := s.limiter.TokenCount(platform, model)
	s.metrics.Limiter.Tokens.WithLabelValues(platform, model).Set(float64(tokens))

	response := map[string]any{
		"platform": platform,
		"model":    model,
		"tokens":   tokens,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type acquireRequest struct {
	MaxWaitMs int `json:"max_wait_ms"`
}

func (s *Server) handleAcquire(c echo.Context) error {
	platform, model := c.Param("platform"), c.Param("model")

	var req acquireRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.MaxWaitMs < 0 {
		return apperrors.ValidationError("max_wait_ms must not be negative").WithField("max_wait_ms", req.MaxWaitMs)
	}

	var allowed bool
	var err error
	if req.MaxWaitMs > 0 {
		allowed, err = s.limiter.Wait(c.Request().Context(), platform, model, time.Duration(req.MaxWaitMs)*time.Millisecond)
	} else {
		allowed, err = s.limiter.Acquire(platform, model)
	}

	var unknown *ratelimit.UnknownModelError
	if errors.As(err, &unknown) {
		return apperrors.NotFoundError("no rate limit configured for model").
			WithField("platform", platform).
			WithField("model", model)
	}
	if err != nil {
		return apperrors.InternalError("admission check failed", err)
	}

	result := "denied"
	if allowed {
		result = "allowed"
	}
	s.metrics.Limiter.Admissions.WithLabelValues(platform, model, result).Inc()
	s.metrics.Limiter.Tokens.WithLabelValues(platform, model).Set(float64(s.limiter.TokenCount(platform, model)))

	// The bucket changed, so any cached count read is stale now.
	s.invalidateCached("/api/v1/limits/" + platform + "/" + model)

	if !allowed {
		return apperrors.RateLimitedError("admission budget exhausted").
			WithField("platform", platform).
			WithField("model", model)
	}

	if err := c.JSON(http.StatusOK, map[string]any{"allowed": true}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleResetBucket(c echo.Context) error {
	platform, model := c.Param("platform"), c.Param("model")

	s.limiter.Reset(platform, model)
	s.invalidateCached("/api/v1/limits/" + platform + "/" + model)

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCacheStats(c echo.Context) error {
	stats := s.cache.Stats()

	response := map[string]any{
		"hits":     stats.Hits,
		"misses":   stats.Misses,
		"sets":     stats.Sets,
		"deletes":  stats.Deletes,
		"hit_rate": stats.HitRate(),
		"entries":  s.cache.Size(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
