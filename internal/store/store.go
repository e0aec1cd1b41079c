// Package store provides a uniform document-store interface over named
// collections, with mongo, in-memory and null backends.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNoDocuments signals an empty FindOne result.
	ErrNoDocuments = errors.New("store: no documents")
	// ErrDuplicateKey signals a unique-index violation.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Error wraps a backend failure with the operation and collection.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoDocuments) || errors.Is(err, ErrDuplicateKey) {
		return err
	}
	return &Error{Op: op, Collection: collection, Err: err}
}

// FindOptions bounds multi-document reads.
type FindOptions struct {
	Projection bson.M
	Sort       bson.D
	Limit      int64
}

// UpdateResult reports the outcome of UpdateOne.
type UpdateResult struct {
	Matched    int64
	Modified   int64
	UpsertedID string
}

// Store is the document store contract consumed by all repositories.
// FindOne decodes the newest match into out or returns ErrNoDocuments;
// a nil sort means unspecified order.
type Store interface {
	Insert(ctx context.Context, collection string, doc any) (string, error)
	FindOne(ctx context.Context, collection string, filter bson.M, sort bson.D, out any) error
	FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error
	UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error)
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error
	EnsureIndex(ctx context.Context, collection string, keys bson.D, unique bool) error
}

// Collection names used across the application.
const (
	CollectionFlights           = "flights"
	CollectionHotelsRestaurants = "hotels_restaurants"
	CollectionResearch          = "research"
	CollectionItineraries       = "itineraries"
	CollectionSubscriptions     = "subscriptions"
	CollectionUsage             = "usage"
)
