package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingDestination = errors.New("missing_destination")
	ErrInvalidNumDays     = errors.New("invalid_num_days")
	ErrNotFound           = errors.New("itinerary_not_found")
	ErrAgentFailure       = errors.New("agent_failure")
)

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (Result, error)
	HistoryByUser(ctx context.Context, userID string, limit int64) ([]HistoryEntry, error)
	GetByID(ctx context.Context, id, userID string) (*Record, error)
	Update(ctx context.Context, id, userID string, update UpdateRequest) error
	Delete(ctx context.Context, id, userID string) error
	ByPreferences(ctx context.Context, filter PreferenceFilter, limit int64) ([]HistoryEntry, error)
	Stats(ctx context.Context) (Stats, error)
	Sweep(ctx context.Context) (int64, error)
}

type Repository interface {
	FindFresh(ctx context.Context, req GenerateRequest, since time.Time) (*Record, error)
	Insert(ctx context.Context, rec *Record) (string, error)
	ByUser(ctx context.Context, userID string, limit int64) ([]HistoryEntry, error)
	FindByID(ctx context.Context, id, userID string) (*Record, error)
	Update(ctx context.Context, id, userID string, update UpdateRequest, at time.Time) error
	Delete(ctx context.Context, id, userID string) error
	ByPreferences(ctx context.Context, filter PreferenceFilter, limit int64) ([]HistoryEntry, error)
	Stats(ctx context.Context, now time.Time) (Stats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
