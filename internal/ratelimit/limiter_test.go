package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younesh11/url-shortner/internal/ratelimit"
	"github.com/younesh11/url-shortner/internal/store"
)

var errStore = errors.New("store error")

// failingStore always errors.
type failingStore struct{}

func (f *failingStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, errStore
}

func testPolicy() *ratelimit.Policy {
	return &ratelimit.Policy{
		Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
			ratelimit.ScopeWrite: {
				{Window: time.Minute, Max: 2},
			},
			ratelimit.ScopeGlobal: {
				{Window: time.Minute, Max: 5},
			},
		},
	}
}

func TestPolicyLimiterAllow(t *testing.T) {
	writeScopes := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}

	t.Run("allows requests within every limit", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 2 {
			allowed, exceeded, err := limiter.Allow(context.Background(), "client1", writeScopes)

			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Nil(t, exceeded)
		}
	})

	t.Run("reports the exceeded scope", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 2 {
			_, _, err := limiter.Allow(context.Background(), "client1", writeScopes)
			require.NoError(t, err)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client1", writeScopes)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, ratelimit.ScopeWrite, exceeded.Scope)
		assert.Equal(t, int64(2), exceeded.Config.Max)
		assert.Equal(t, int64(3), exceeded.Count)
	})

	t.Run("scopes without configured limits are ignored", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 10 {
			allowed, exceeded, err := limiter.Allow(
				context.Background(), "client1", []ratelimit.Scope{ratelimit.ScopeRead},
			)

			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Nil(t, exceeded)
		}
	})

	t.Run("write and read budgets are independent per client", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 2 {
			_, _, err := limiter.Allow(context.Background(), "client1", writeScopes)
			require.NoError(t, err)
		}

		allowed, _, err := limiter.Allow(context.Background(), "client2", writeScopes)

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("allows requests again after the window expires", func(t *testing.T) {
		policy := &ratelimit.Policy{
			Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
				ratelimit.ScopeWrite: {
					{Window: 50 * time.Millisecond, Max: 2},
				},
			},
		}
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), policy)
		scopes := []ratelimit.Scope{ratelimit.ScopeWrite}

		for range 2 {
			allowed, _, err := limiter.Allow(context.Background(), "client1", scopes)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, _, _ := limiter.Allow(context.Background(), "client1", scopes)
		assert.False(t, allowed, "should be rate limited")

		time.Sleep(60 * time.Millisecond)

		allowed, _, err := limiter.Allow(context.Background(), "client1", scopes)

		require.NoError(t, err)
		assert.True(t, allowed, "should be allowed after the window expires")
	})

	t.Run("propagates store errors", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(&failingStore{}, testPolicy())

		allowed, exceeded, err := limiter.Allow(context.Background(), "client1", writeScopes)

		assert.ErrorIs(t, err, errStore)
		assert.False(t, allowed)
		assert.Nil(t, exceeded)
	})
}

func TestPolicyLimiterAllowLimits(t *testing.T) {
	limits := []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 2},
	}

	t.Run("enforces route limits independently of the policy", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 2 {
			allowed, exceeded, err := limiter.AllowLimits(
				context.Background(), "client1", "/api/shorten", limits,
			)

			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Nil(t, exceeded)
		}

		allowed, exceeded, err := limiter.AllowLimits(
			context.Background(), "client1", "/api/shorten", limits,
		)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Empty(t, exceeded.Scope)
		assert.Equal(t, int64(3), exceeded.Count)
	})

	t.Run("tracks routes separately per client", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), testPolicy())

		for range 2 {
			_, _, err := limiter.AllowLimits(context.Background(), "client1", "/api/shorten", limits)
			require.NoError(t, err)
		}

		allowed, _, err := limiter.AllowLimits(context.Background(), "client1", "/{code}", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "a different route gets its own counter")

		allowed, _, err = limiter.AllowLimits(context.Background(), "client2", "/api/shorten", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "a different client gets its own counter")
	})

	t.Run("propagates store errors", func(t *testing.T) {
		limiter := ratelimit.NewPolicyLimiter(&failingStore{}, testPolicy())

		allowed, exceeded, err := limiter.AllowLimits(
			context.Background(), "client1", "/api/shorten", limits,
		)

		assert.ErrorIs(t, err, errStore)
		assert.False(t, allowed)
		assert.Nil(t, exceeded)
	})
}

func TestDefaultPolicy(t *testing.T) {
	policy := ratelimit.DefaultPolicy(60)

	require.Len(t, policy.Limits[ratelimit.ScopeWrite], 1)
	assert.Equal(t, int64(60), policy.Limits[ratelimit.ScopeWrite][0].Max)
	assert.Equal(t, int64(600), policy.Limits[ratelimit.ScopeRead][0].Max)
	assert.Equal(t, int64(1200), policy.Limits[ratelimit.ScopeGlobal][0].Max)
	assert.Equal(t, time.Minute, policy.Limits[ratelimit.ScopeWrite][0].Window)
}
