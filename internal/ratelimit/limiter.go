// Package ratelimit bounds outbound request volume per provider model using
// continuously-refilling token buckets, avoiding the bursty edge effects of
// fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// pollInterval is the cadence at which Wait re-attempts an acquisition.
const pollInterval = 100 * time.Millisecond

// UnknownModelError reports an acquisition attempt against a platform/model
// pair missing from the quota table. Callers must register every model they
// intend to call; admitting unlimited traffic to an unconfigured model would
// defeat the limiter.
type UnknownModelError struct {
	Platform string
	Model    string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("no rate limit configured for %s/%s", e.Platform, e.Model)
}

// bucket holds the live token count for one model. Tokens are fractional
// internally; consumers only ever see floored counts.
type bucket struct {
	tokens          float64
	capacity        float64
	refillPerSecond float64
	lastRefill      time.Time
}

// refill credits tokens proportionally to the time elapsed since the last
// refill, capped at capacity. Refill always precedes an admission check so
// the check sees the freshest count.
func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillPerSecond)
	b.lastRefill = now
}

// Limiter admits requests per platform/model against the configured
// requests-per-minute quota. Buckets are created lazily on first use, start
// full (full burst allowance), and live for the process lifetime unless
// reset. State is process-local; a restart resets all budgets.
type Limiter struct {
	cfg   Config
	clock clockwork.Clock

	mu      sync.Mutex
	buckets map[Key]*bucket
}

// NewLimiter creates a limiter over the given quota table.
func NewLimiter(cfg Config, clock clockwork.Clock) *Limiter {
	return &Limiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[Key]*bucket),
	}
}

// Acquire attempts to take one token for the platform/model pair. It refills
// the bucket first, then deducts a token if at least one is available. A
// pair absent from the quota table is a hard *UnknownModelError.
func (l *Limiter) Acquire(platform, model string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.bucketLocked(platform, model)
	if err != nil {
		return false, err
	}

	b.refill(l.clock.Now())
	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// Wait polls Acquire every 100ms until a token is granted or maxWait
// elapses. It returns false on timeout without error, so callers decide
// whether to queue, drop, or surface a rate-limit error. Cancelling ctx
// aborts the wait early.
func (l *Limiter) Wait(ctx context.Context, platform, model string, maxWait time.Duration) (bool, error) {
	deadline := l.clock.Now().Add(maxWait)

	for {
		ok, err := l.Acquire(platform, model)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		if !l.clock.Now().Before(deadline) {
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-l.clock.After(pollInterval):
		}
	}
}

// TokenCount reports the floored token count for a pair, refilling as a side
// effect so monitoring reflects the current state. An uncreated or
// unconfigured bucket reports 0 without being created.
func (l *Limiter) TokenCount(platform, model string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[Key{Platform: platform, Model: model}]
	if !ok {
		return 0
	}
	b.refill(l.clock.Now())
	return int(b.tokens)
}

// Reset drops the bucket for a pair; the next Acquire recreates it full.
func (l *Limiter) Reset(platform, model string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, Key{Platform: platform, Model: model})
}

func (l *Limiter) bucketLocked(platform, model string) (*bucket, error) {
	key := Key{Platform: platform, Model: model}
	if b, ok := l.buckets[key]; ok {
		return b, nil
	}

	limits, ok := l.cfg.Lookup(platform, model)
	if !ok {
		return nil, &UnknownModelError{Platform: platform, Model: model}
	}

	b := &bucket{
		tokens:          float64(limits.RequestsPerMinute),
		capacity:        float64(limits.RequestsPerMinute),
		refillPerSecond: float64(limits.RequestsPerMinute) / 60,
		lastRefill:      l.clock.Now(),
	}
	l.buckets[key] = b
	return b, nil
}
