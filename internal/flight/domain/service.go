package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidAirportCode = errors.New("invalid_airport_code")
	ErrInvalidDate        = errors.New("invalid_date")
	ErrReturnBeforeDepart = errors.New("return_date_before_departure")
	ErrAgentFailure       = errors.New("agent_failure")
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) (SearchResult, error)
	History(ctx context.Context, userID string, limit int64) ([]HistoryEntry, error)
	Sweep(ctx context.Context) (int64, error)
}

type Repository interface {
	FindFresh(ctx context.Context, req SearchRequest, since time.Time) (*SearchRecord, error)
	Insert(ctx context.Context, rec *SearchRecord) (string, error)
	Recent(ctx context.Context, userID string, limit int64) ([]HistoryEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
