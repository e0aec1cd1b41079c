package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingDestination = errors.New("missing_destination")
	ErrAgentFailure       = errors.New("agent_failure")
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) (SearchResult, error)
	HistoryByDestination(ctx context.Context, destination string, limit int64) ([]HistoryEntry, error)
	Sweep(ctx context.Context) (int64, error)
}

type Repository interface {
	FindFresh(ctx context.Context, req SearchRequest, since time.Time) (*SearchRecord, error)
	Insert(ctx context.Context, rec *SearchRecord) (string, error)
	ByDestination(ctx context.Context, destination string, limit int64) ([]HistoryEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
