package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keySearch = "search:%s:user:%s"

// SearchLimiter throttles the agent-backed endpoints per user. A nil or
// disabled limiter allows everything, so the HTTP layer never branches on
// configuration.
type SearchLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewSearchLimiter(cfg config.Config) (*SearchLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.SearchRate <= 0 || limitCfg.SearchBurst <= 0 {
		return nil, errors.New("search rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &SearchLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.SearchRate,
		burst:   limitCfg.SearchBurst,
	}, nil
}

func (l *SearchLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow consumes one token for the given route and user. Anonymous callers
// share a bucket per route.
func (l *SearchLimiter) Allow(ctx context.Context, route, userID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "anonymous"
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keySearch, route, userID), l.rate, l.burst)
}
