package cache

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Miss(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	value, ok := c.Get("absent")

	assert.False(t, ok)
	assert.Nil(t, value)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestSetGet_RoundTrip(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	c.Set("posts:5", "payload", time.Minute)

	value, ok := c.Get("posts:5")
	require.True(t, ok)
	assert.Equal(t, "payload", value)
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestGet_ExpiredEntry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(clock)

	c.Set("posts:5", "payload", time.Second)

	clock.Advance(1100 * time.Millisecond)

	value, ok := c.Get("posts:5")
	assert.False(t, ok)
	assert.Nil(t, value)

	stats := c.Stats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0, c.Size(), "expired entry is deleted on lookup")
}

func TestGet_ExpiryIsExactAtTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(clock)

	c.Set("k", "v", 10*time.Second)

	clock.Advance(10*time.Second - time.Nanosecond)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry is fresh strictly before the TTL")

	clock.Advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must not be served once age reaches TTL")
}

func TestSet_ReplacesAndResetsAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(clock)

	c.Set("k", "old", 10*time.Second)
	clock.Advance(9 * time.Second)
	c.Set("k", "new", 10*time.Second)
	clock.Advance(9 * time.Second)

	value, ok := c.Get("k")
	require.True(t, ok, "overwrite resets createdAt")
	assert.Equal(t, "new", value)
}

func TestInvalidate_Substring(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	c.Set("GET:/api/v1/posts:alice", 1, time.Minute)
	c.Set("GET:/api/v1/posts:bob", 2, time.Minute)
	c.Set("GET:/api/v1/trending:alice", 3, time.Minute)

	deleted := c.Invalidate("/api/v1/posts")

	assert.Equal(t, 2, deleted)
	_, ok := c.Get("GET:/api/v1/posts:alice")
	assert.False(t, ok)
	_, ok = c.Get("GET:/api/v1/trending:alice")
	assert.True(t, ok)
}

func TestInvalidate_ExactKey(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	c.Set("posts:5", "v", time.Minute)
	deleted := c.Invalidate("posts:5")

	assert.Equal(t, 1, deleted)
	_, ok := c.Get("posts:5")
	assert.False(t, ok)
}

func TestInvalidate_NoMatch(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	c.Set("posts:5", "v", time.Minute)

	assert.Equal(t, 0, c.Invalidate("events"))
	assert.Equal(t, 1, c.Size())
}

func TestInvalidateRegexp(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	c.Set("GET:/api/v1/posts/1", 1, time.Minute)
	c.Set("GET:/api/v1/posts/2", 2, time.Minute)
	c.Set("GET:/api/v1/limits/openai", 3, time.Minute)

	deleted := c.InvalidateRegexp(regexp.MustCompile(`posts/\d+$`))

	assert.Equal(t, 2, deleted)
	assert.Equal(t, 1, c.Size())
}

func TestClear(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i, time.Minute)
	}

	assert.Equal(t, 5, c.Clear())
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, int64(5), c.Stats().Deletes)
}

func TestSweepExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(clock)

	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Hour)

	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.SweepExpired())
	assert.Equal(t, 1, c.Size())

	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestStats_HitRate(t *testing.T) {
	c := New(clockwork.NewFakeClock())

	assert.Equal(t, 0.0, c.Stats().HitRate(), "no lookups yet")

	c.Set("k", "v", time.Minute)
	c.Get("k")
	c.Get("k")
	c.Get("absent")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate(), 1e-9)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestStartSweeper(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(clock)

	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Hour)

	stop := c.StartSweeper(5 * time.Minute)
	defer stop()

	clock.Advance(5 * time.Minute)

	require.Eventually(t, func() bool {
		return c.Size() == 1
	}, time.Second, 5*time.Millisecond, "sweeper should evict the expired entry")
}
