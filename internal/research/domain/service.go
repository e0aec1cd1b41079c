package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingDestination = errors.New("missing_destination")
	ErrInvalidNumDays     = errors.New("invalid_num_days")
	ErrAgentFailure       = errors.New("agent_failure")
)

type Service interface {
	Research(ctx context.Context, req Request) (Result, error)
	HistoryByDestination(ctx context.Context, destination string, limit int64) ([]HistoryEntry, error)
	Sweep(ctx context.Context) (int64, error)
}

type Repository interface {
	FindFresh(ctx context.Context, req Request, since time.Time) (*Record, error)
	Insert(ctx context.Context, rec *Record) (string, error)
	ByDestination(ctx context.Context, destination string, limit int64) ([]HistoryEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
