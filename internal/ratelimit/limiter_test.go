package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig(map[Key]Limits{
		{Platform: "openai", Model: "gpt-4o"}:      {RequestsPerMinute: 60, TokensPerMinute: 30000, RequestsPerDay: 10000},
		{Platform: "anthropic", Model: "sonnet"}:   {RequestsPerMinute: 5, TokensPerMinute: 20000, RequestsPerDay: 2000},
		{Platform: "elevenlabs", Model: "turbo-v2"}: {RequestsPerMinute: 120},
	})
	require.NoError(t, err)
	return cfg
}

func drain(t *testing.T, l *Limiter, platform, model string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ok, err := l.Acquire(platform, model)
		require.NoError(t, err)
		require.True(t, ok, "acquire %d should succeed", i+1)
	}
}

func TestAcquire_ExactlyQuotaWithoutRefill(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	// With a frozen clock, exactly RPM acquisitions succeed, then none.
	drain(t, l, "anthropic", "sonnet", 5)

	ok, err := l.Acquire("anthropic", "sonnet")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAcquire_UnknownModel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	ok, err := l.Acquire("openai", "no-such-model")

	assert.False(t, ok)
	var unknown *UnknownModelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "openai", unknown.Platform)
	assert.Equal(t, "no-such-model", unknown.Model)
}

func TestAcquire_RefillsOverTime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	// 5 rpm refills one token every 12 seconds.
	clock.Advance(12 * time.Second)
	ok, err := l.Acquire("anthropic", "sonnet")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Acquire("anthropic", "sonnet")
	require.NoError(t, err)
	assert.False(t, ok, "only one token should have refilled")
}

func TestAcquire_PartialTokenIsNotEnough(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	// 6 seconds refills only half a token.
	clock.Advance(6 * time.Second)
	ok, err := l.Acquire("anthropic", "sonnet")
	require.NoError(t, err)
	assert.False(t, ok)

	// The half token persists; 6 more seconds completes it.
	clock.Advance(6 * time.Second)
	ok, err = l.Acquire("anthropic", "sonnet")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenCount_NeverExceedsCapacity(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	// Bucket starts full; a long idle period must not overfill it.
	_, err := l.Acquire("openai", "gpt-4o")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	assert.Equal(t, 60, l.TokenCount("openai", "gpt-4o"))
}

func TestTokenCount_UnknownBucket(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	assert.Equal(t, 0, l.TokenCount("openai", "gpt-4o"), "uncreated bucket reports zero")
	assert.Equal(t, 0, l.TokenCount("nobody", "nothing"))

	// TokenCount must not have created the bucket: a fresh Acquire still
	// starts from full capacity.
	drain(t, l, "openai", "gpt-4o", 60)
}

func TestTokenCount_Floors(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	clock.Advance(18 * time.Second) // 1.5 tokens refilled
	assert.Equal(t, 1, l.TokenCount("anthropic", "sonnet"))
}

func TestReset_RecreatesFullBucket(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	l.Reset("anthropic", "sonnet")
	drain(t, l, "anthropic", "sonnet", 5)
}

func TestWait_ImmediateWhenTokenAvailable(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	ok, err := l.Wait(context.Background(), "anthropic", "sonnet", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWait_TimesOutWithoutError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	ok, err := l.Wait(context.Background(), "anthropic", "sonnet", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWait_UnknownModel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	ok, err := l.Wait(context.Background(), "openai", "no-such-model", time.Second)

	assert.False(t, ok)
	var unknown *UnknownModelError
	require.ErrorAs(t, err, &unknown)
}

func TestWait_SucceedsAfterRefill(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	type waitResult struct {
		ok  bool
		err error
	}
	resultCh := make(chan waitResult, 1)
	go func() {
		ok, err := l.Wait(context.Background(), "anthropic", "sonnet", time.Minute)
		resultCh <- waitResult{ok, err}
	}()

	// Wait for the poller to park on the clock, then refill a token.
	require.NoError(t, clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(12 * time.Second)

	result := <-resultCh
	require.NoError(t, result.err)
	assert.True(t, result.ok)
}

func TestWait_CancelledContext(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewLimiter(testConfig(t), clock)

	drain(t, l, "anthropic", "sonnet", 5)

	ctx, cancel := context.WithCancel(context.Background())

	resultCh := make(chan error, 1)
	go func() {
		_, err := l.Wait(ctx, "anthropic", "sonnet", time.Minute)
		resultCh <- err
	}()

	require.NoError(t, clock.BlockUntilContext(t.Context(), 1))
	cancel()

	assert.ErrorIs(t, <-resultCh, context.Canceled)
}
