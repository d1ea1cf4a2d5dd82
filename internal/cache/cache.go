// Package cache provides an in-memory TTL response cache with pattern
// invalidation, used to memoize idempotent read handlers.
package cache

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stats is a running counter of cache activity. HitRate derives from Hits
// and Misses.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
}

// HitRate returns hits/(hits+misses), or 0 before any lookup has happened.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

// ResponseCache is a TTL-keyed cache for read-handler results. Expiry is
// lazy on Get, with a periodic sweep bounding memory for keys that are never
// looked up again. An entry is never served once its age reaches its TTL.
type ResponseCache struct {
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	stats   Stats
}

// New creates an empty cache on the given clock.
func New(clock clockwork.Clock) *ResponseCache {
	return &ResponseCache{
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Get returns the cached value for key if present and fresh. An expired
// entry is deleted and counted as a miss.
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	if c.clock.Now().Sub(e.createdAt) >= e.ttl {
		delete(c.entries, key)
		c.stats.Deletes++
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return e.data, true
}

// Set stores value under key with the given TTL, replacing any existing
// entry and resetting its age.
func (c *ResponseCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		data:      value,
		createdAt: c.clock.Now(),
		ttl:       ttl,
	}
	c.stats.Sets++
}

// Invalidate deletes every entry whose key contains pattern as a substring
// and returns the number deleted.
func (c *ResponseCache) Invalidate(pattern string) int {
	return c.deleteMatching(func(key string) bool {
		return strings.Contains(key, pattern)
	})
}

// InvalidateRegexp deletes every entry whose key matches re and returns the
// number deleted.
func (c *ResponseCache) InvalidateRegexp(re *regexp.Regexp) int {
	return c.deleteMatching(re.MatchString)
}

// Clear deletes all entries and returns the number deleted.
func (c *ResponseCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*entry)
	c.stats.Deletes += int64(n)
	return n
}

// SweepExpired deletes every entry whose age already exceeds its TTL and
// returns the number deleted.
func (c *ResponseCache) SweepExpired() int {
	now := c.clock.Now()
	return c.deleteMatchingEntry(func(e *entry) bool {
		return now.Sub(e.createdAt) >= e.ttl
	})
}

// Size returns the current number of entries, including not-yet-swept
// expired ones.
func (c *ResponseCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the running counters.
func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// StartSweeper runs SweepExpired every interval on a background goroutine.
// The returned stop function cancels the sweeper; call it on shutdown.
func (c *ResponseCache) StartSweeper(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if swept := c.SweepExpired(); swept > 0 {
					slog.Debug("Swept expired cache entries", "count", swept, "remaining", c.Size())
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

func (c *ResponseCache) deleteMatching(match func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for key := range c.entries {
		if match(key) {
			delete(c.entries, key)
			deleted++
		}
	}
	c.stats.Deletes += int64(deleted)
	return deleted
}

func (c *ResponseCache) deleteMatchingEntry(match func(e *entry) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for key, e := range c.entries {
		if match(e) {
			delete(c.entries, key)
			deleted++
		}
	}
	c.stats.Deletes += int64(deleted)
	return deleted
}
