package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(correlationMiddleware)
	s.echo.Use(ErrorHandlingMiddleware())
	if s.metrics.HTTP != nil {
		s.echo.Use(s.metrics.HTTP.Middleware())
	}

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))

	api := s.echo.Group("/api/v1", newRateLimiter(s.config.HTTPRatePerSecond, s.config.HTTPRateBurst))

	cached := s.cacheMiddleware(s.config.CacheTTL)

	api.POST("/posts", s.handleIngestPosts)
	api.GET("/posts/:author", s.handleAuthorPosts, cached)
	api.GET("/trending", s.handleTrending, cached)

	api.POST("/insights/engagement", s.handleEngagement)
	api.POST("/insights/attendance", s.handleAttendance)
	api.POST("/insights/sentiment", s.handleSentiment)

	api.GET("/limits/:platform/:model", s.handleTokenCount, cached)
	api.POST("/limits/:platform/:model/acquire", s.handleAcquire)
	api.POST("/limits/:platform/:model/reset", s.handleResetBucket)

	api.GET("/cache/stats", s.handleCacheStats)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
