package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	limiter, err := NewSearchLimiter(config.Config{})
	require.NoError(t, err)
	require.Nil(t, limiter)
	require.False(t, limiter.Enabled())

	res, err := limiter.Allow(context.Background(), "flights", "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestEnabledLimiterRequiresRedisAddr(t *testing.T) {
	_, err := NewSearchLimiter(config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, SearchRate: 1, SearchBurst: 5},
	})
	require.Error(t, err)
}

func TestBucketTTLCoversFullRefill(t *testing.T) {
	// Refilling 5 tokens at 1 token/s takes 5s; the key must outlive it.
	require.Equal(t, 10*time.Second, bucketTTL(1, 5))
	require.GreaterOrEqual(t, bucketTTL(100, 1), time.Second)
}

func TestCastToFloatHandlesScriptReplies(t *testing.T) {
	require.Equal(t, 2.5, castToFloat("2.5"))
	require.Equal(t, 3.0, castToFloat(int64(3)))
	require.Zero(t, castToFloat("not-a-number"))
}
