// Package migration bootstraps the collection indexes at startup.
package migration

import (
	"context"
	"fmt"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

// Cache lookups filter on the search key fields and sort on created_at;
// the two unique indexes back the one-subscription-per-user rule and the
// atomic usage counter.
var indexes = []indexSpec{
	{
		collection: store.CollectionFlights,
		keys: bson.D{
			{Key: "source", Value: 1},
			{Key: "destination", Value: 1},
			{Key: "departure_date", Value: 1},
			{Key: "return_date", Value: 1},
			{Key: "created_at", Value: -1},
		},
	},
	{
		collection: store.CollectionHotelsRestaurants,
		keys: bson.D{
			{Key: "destination", Value: 1},
			{Key: "theme", Value: 1},
			{Key: "hotel_rating", Value: 1},
			{Key: "created_at", Value: -1},
		},
	},
	{
		collection: store.CollectionResearch,
		keys: bson.D{
			{Key: "destination", Value: 1},
			{Key: "theme", Value: 1},
			{Key: "num_days", Value: 1},
			{Key: "created_at", Value: -1},
		},
	},
	{
		collection: store.CollectionItineraries,
		keys: bson.D{
			{Key: "userid", Value: 1},
			{Key: "destination", Value: 1},
			{Key: "created_at", Value: -1},
		},
	},
	{
		collection: store.CollectionSubscriptions,
		keys:       bson.D{{Key: "userid", Value: 1}},
		unique:     true,
	},
	{
		collection: store.CollectionUsage,
		keys: bson.D{
			{Key: "userid", Value: 1},
			{Key: "month", Value: 1},
		},
		unique: true,
	},
}

// EnsureIndexes creates every application index. Creation is idempotent.
func EnsureIndexes(ctx context.Context, s store.Store) error {
	for _, spec := range indexes {
		if err := s.EnsureIndex(ctx, spec.collection, spec.keys, spec.unique); err != nil {
			return fmt.Errorf("ensure index on %s: %w", spec.collection, err)
		}
	}
	return nil
}
