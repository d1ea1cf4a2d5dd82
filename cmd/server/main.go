package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/abrilera/tangopulse/internal/adapter/httpserver"
	"github.com/abrilera/tangopulse/internal/adapter/metrics"
	"github.com/abrilera/tangopulse/internal/app"
	"github.com/abrilera/tangopulse/internal/cache"
	"github.com/abrilera/tangopulse/internal/platform/config"
	"github.com/abrilera/tangopulse/internal/platform/logging"
	"github.com/abrilera/tangopulse/internal/platform/version"
	"github.com/abrilera/tangopulse/internal/ratelimit"
	"github.com/abrilera/tangopulse/internal/scoring"
)

var errNoModels = errors.New("no provider models configured")

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().String())

	limitsCfg, err := ratelimit.LoadConfig(cfg.RateLimitsFile)
	if err != nil {
		slog.Error("Failed to load rate limit config", "file", cfg.RateLimitsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded provider rate limits", "models", len(limitsCfg.Keys()))

	clock := clockwork.NewRealClock()

	limiter := ratelimit.NewLimiter(limitsCfg, clock)

	respCache := cache.New(clock)
	stopSweeper := respCache.StartSweeper(cfg.CacheSweepInterval)

	store := app.NewPostStore(clock, cfg.MaxPostAge)
	trends := scoring.NewTrendDetector(clock)
	service := app.NewService(store, trends, clock)

	registry := metrics.NewRegistry()
	m := httpserver.Metrics{
		HTTP:    metrics.NewHTTPMetrics(registry),
		Cache:   metrics.NewCacheMetrics(registry),
		Limiter: metrics.NewLimiterMetrics(registry),
		Scoring: metrics.NewScoringMetrics(registry),
	}

	healthChecks := []httpserver.HealthCheck{
		{
			Name: "rate_limit_config",
			Check: func(_ context.Context) error {
				if len(limitsCfg.Keys()) == 0 {
					return errNoModels
				}
				return nil
			},
		},
	}

	srv := httpserver.NewServer(cfg, service, limiter, respCache, m, metrics.Handler(registry), healthChecks)

	done := runGracefulShutdown(srv, stopSweeper)

	slog.Info("Server listening", "port", cfg.Port)
	if err := srv.Start(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}

func runGracefulShutdown(srv *httpserver.Server, stopSweeper func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		stopSweeper()
		close(done)
	}()

	return done
}
