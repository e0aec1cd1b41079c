package repository

import (
	"context"
	"time"

	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) hoteldomain.Repository {
	return &repo{store: s}
}

func (r *repo) FindFresh(ctx context.Context, req hoteldomain.SearchRequest, since time.Time) (*hoteldomain.SearchRecord, error) {
	var rec hoteldomain.SearchRecord
	err := r.store.FindOne(ctx, store.CollectionHotelsRestaurants,
		bson.M{
			"destination":  req.Destination,
			"theme":        req.Theme,
			"hotel_rating": req.HotelRating,
			"created_at":   bson.M{"$gte": since},
		},
		bson.D{{Key: "created_at", Value: -1}},
		&rec,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) Insert(ctx context.Context, rec *hoteldomain.SearchRecord) (string, error) {
	return r.store.Insert(ctx, store.CollectionHotelsRestaurants, rec)
}

func (r *repo) ByDestination(ctx context.Context, destination string, limit int64) ([]hoteldomain.HistoryEntry, error) {
	var entries []hoteldomain.HistoryEntry
	err := r.store.FindMany(ctx, store.CollectionHotelsRestaurants,
		bson.M{"destination": destination},
		store.FindOptions{
			Projection: bson.M{
				"destination":  1,
				"theme":        1,
				"hotel_rating": 1,
				"created_at":   1,
			},
			Sort:  bson.D{{Key: "created_at", Value: -1}},
			Limit: limit,
		},
		&entries,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.store.DeleteMany(ctx, store.CollectionHotelsRestaurants,
		bson.M{"created_at": bson.M{"$lt": cutoff}})
}
