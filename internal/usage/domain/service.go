package domain

import (
	"context"
	"errors"
)

var (
	ErrMissingUser   = errors.New("missing_user")
	ErrQuotaExceeded = errors.New("quota_exceeded")
)

type Service interface {
	// CheckAndConsume admits one gated request for userID, consuming quota
	// unless the user's plan bypasses metering.
	CheckAndConsume(ctx context.Context, userID string) error
	// CountThisMonth reports consumption without mutating it.
	CountThisMonth(ctx context.Context, userID string) (int, error)
}

type Repository interface {
	Count(ctx context.Context, userID, month string) (int, error)
	// IncrementIfBelow bumps the counter only while it is under ceiling.
	// It is a single conditional write, safe under concurrency.
	IncrementIfBelow(ctx context.Context, userID, month string, ceiling int) (bool, error)
}
