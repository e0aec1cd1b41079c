package repository

import (
	"context"
	"time"

	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) researchdomain.Repository {
	return &repo{store: s}
}

func (r *repo) FindFresh(ctx context.Context, req researchdomain.Request, since time.Time) (*researchdomain.Record, error) {
	var rec researchdomain.Record
	err := r.store.FindOne(ctx, store.CollectionResearch,
		bson.M{
			"destination": req.Destination,
			"theme":       req.Theme,
			"num_days":    req.NumDays,
			"created_at":  bson.M{"$gte": since},
		},
		bson.D{{Key: "created_at", Value: -1}},
		&rec,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) Insert(ctx context.Context, rec *researchdomain.Record) (string, error) {
	return r.store.Insert(ctx, store.CollectionResearch, rec)
}

func (r *repo) ByDestination(ctx context.Context, destination string, limit int64) ([]researchdomain.HistoryEntry, error) {
	var entries []researchdomain.HistoryEntry
	err := r.store.FindMany(ctx, store.CollectionResearch,
		bson.M{"destination": destination},
		store.FindOptions{
			Projection: bson.M{
				"destination": 1,
				"theme":       1,
				"num_days":    1,
				"created_at":  1,
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
	return r.store.DeleteMany(ctx, store.CollectionResearch,
		bson.M{"created_at": bson.M{"$lt": cutoff}})
}
