// Package config loads and validates the application configuration from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// RateLimitsFile is the YAML quota table for provider models.
	RateLimitsFile string `env:"RATE_LIMITS_FILE" default:"rate_limits.yaml"`

	// Response cache tuning.
	CacheTTL           time.Duration `env:"CACHE_TTL" default:"60s"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" default:"5m"`

	// TrendingWindow is the default observation window for trend detection.
	TrendingWindow time.Duration `env:"TRENDING_WINDOW" default:"24h"`

	// MaxPostAge bounds how long ingested posts are retained in memory.
	MaxPostAge time.Duration `env:"MAX_POST_AGE" default:"168h"` // 7 days

	// Per-IP request rate limiting on the HTTP surface.
	HTTPRatePerSecond float64 `env:"HTTP_RATE_PER_SECOND" default:"20"`
	HTTPRateBurst     int     `env:"HTTP_RATE_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.RateLimitsFile == "" {
		return fmt.Errorf("RATE_LIMITS_FILE must not be empty")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", cfg.CacheTTL)
	}
	if cfg.CacheSweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be positive, got %v", cfg.CacheSweepInterval)
	}
	if cfg.TrendingWindow <= 0 {
		return fmt.Errorf("TRENDING_WINDOW must be positive, got %v", cfg.TrendingWindow)
	}
	if cfg.HTTPRatePerSecond <= 0 || cfg.HTTPRateBurst <= 0 {
		return fmt.Errorf("HTTP rate limit settings must be positive")
	}
	return nil
}
