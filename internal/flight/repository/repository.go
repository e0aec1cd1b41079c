package repository

import (
	"context"
	"time"

	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) flightdomain.Repository {
	return &repo{store: s}
}

func (r *repo) FindFresh(ctx context.Context, req flightdomain.SearchRequest, since time.Time) (*flightdomain.SearchRecord, error) {
	var rec flightdomain.SearchRecord
	err := r.store.FindOne(ctx, store.CollectionFlights,
		bson.M{
			"source":         req.Source,
			"destination":    req.Destination,
			"departure_date": req.DepartureDate,
			"return_date":    req.ReturnDate,
			"created_at":     bson.M{"$gte": since},
		},
		bson.D{{Key: "created_at", Value: -1}},
		&rec,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) Insert(ctx context.Context, rec *flightdomain.SearchRecord) (string, error) {
	return r.store.Insert(ctx, store.CollectionFlights, rec)
}

func (r *repo) Recent(ctx context.Context, userID string, limit int64) ([]flightdomain.HistoryEntry, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userid"] = userID
	}
	var entries []flightdomain.HistoryEntry
	err := r.store.FindMany(ctx, store.CollectionFlights, filter,
		store.FindOptions{
			Projection: bson.M{
				"source":         1,
				"destination":    1,
				"departure_date": 1,
				"return_date":    1,
				"created_at":     1,
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
	return r.store.DeleteMany(ctx, store.CollectionFlights,
		bson.M{"created_at": bson.M{"$lt": cutoff}})
}
