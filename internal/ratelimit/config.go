package ratelimit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Key identifies one provider model for rate-limiting purposes.
type Key struct {
	Platform string
	Model    string
}

func (k Key) String() string {
	return k.Platform + "/" + k.Model
}

// Limits holds the published quotas for one provider model. The limiter
// admits on RequestsPerMinute; the token and daily quotas are carried for
// callers that meter their own payloads.
type Limits struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	TokensPerMinute   int `yaml:"tokens_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// Config is the static per-model quota table, loaded once at startup and
// immutable afterwards.
type Config struct {
	limits map[Key]Limits
}

// NewConfig builds a validated config from an explicit table.
func NewConfig(limits map[Key]Limits) (Config, error) {
	cfg := Config{limits: make(map[Key]Limits, len(limits))}
	for key, l := range limits {
		if err := validateLimits(key, l); err != nil {
			return Config{}, err
		}
		cfg.limits[key] = l
	}
	return cfg, nil
}

// configFile is the YAML shape of the quota table: platform → model → limits.
type configFile struct {
	Platforms map[string]map[string]Limits `yaml:"platforms"`
}

// LoadConfig reads and validates the quota table from a YAML file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read rate limit config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses and validates a YAML quota table.
func ParseConfig(raw []byte) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse rate limit config: %w", err)
	}

	limits := make(map[Key]Limits)
	for platform, models := range file.Platforms {
		for model, l := range models {
			limits[Key{Platform: platform, Model: model}] = l
		}
	}

	if len(limits) == 0 {
		return Config{}, fmt.Errorf("rate limit config defines no models")
	}

	return NewConfig(limits)
}

// Lookup returns the limits for a platform/model pair.
func (c Config) Lookup(platform, model string) (Limits, bool) {
	l, ok := c.limits[Key{Platform: platform, Model: model}]
	return l, ok
}

// Keys returns every configured platform/model pair.
func (c Config) Keys() []Key {
	keys := make([]Key, 0, len(c.limits))
	for key := range c.limits {
		keys = append(keys, key)
	}
	return keys
}

func validateLimits(key Key, l Limits) error {
	if key.Platform == "" || key.Model == "" {
		return fmt.Errorf("rate limit entry %q: platform and model must be non-empty", key)
	}
	if l.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit entry %q: requests_per_minute must be positive, got %d", key, l.RequestsPerMinute)
	}
	if l.TokensPerMinute < 0 || l.RequestsPerDay < 0 {
		return fmt.Errorf("rate limit entry %q: quotas must not be negative", key)
	}
	return nil
}
