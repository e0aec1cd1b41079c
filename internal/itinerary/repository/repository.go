package repository

import (
	"context"
	"errors"
	"math"
	"time"

	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) itinerarydomain.Repository {
	return &repo{store: s}
}

var historyProjection = bson.M{
	"destination": 1,
	"theme":       1,
	"num_days":    1,
	"budget":      1,
	"created_at":  1,
}

func (r *repo) FindFresh(ctx context.Context, req itinerarydomain.GenerateRequest, since time.Time) (*itinerarydomain.Record, error) {
	var rec itinerarydomain.Record
	err := r.store.FindOne(ctx, store.CollectionItineraries,
		bson.M{
			"destination": req.Destination,
			"theme":       req.Theme,
			"num_days":    req.NumDays,
			"userid":      req.UserID,
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

func (r *repo) Insert(ctx context.Context, rec *itinerarydomain.Record) (string, error) {
	return r.store.Insert(ctx, store.CollectionItineraries, rec)
}

func (r *repo) ByUser(ctx context.Context, userID string, limit int64) ([]itinerarydomain.HistoryEntry, error) {
	var entries []itinerarydomain.HistoryEntry
	err := r.store.FindMany(ctx, store.CollectionItineraries,
		bson.M{"userid": userID},
		store.FindOptions{
			Projection: historyProjection,
			Sort:       bson.D{{Key: "created_at", Value: -1}},
			Limit:      limit,
		},
		&entries,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) FindByID(ctx context.Context, id, userID string) (*itinerarydomain.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, itinerarydomain.ErrNotFound
	}
	var rec itinerarydomain.Record
	err = r.store.FindOne(ctx, store.CollectionItineraries,
		bson.M{"_id": oid, "userid": userID}, nil, &rec)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, itinerarydomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) Update(ctx context.Context, id, userID string, update itinerarydomain.UpdateRequest, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return itinerarydomain.ErrNotFound
	}
	set := bson.M{"updated_at": at}
	if update.Theme != "" {
		set["theme"] = update.Theme
	}
	if update.Activities != "" {
		set["activities"] = update.Activities
	}
	if update.Budget != "" {
		set["budget"] = update.Budget
	}
	res, err := r.store.UpdateOne(ctx, store.CollectionItineraries,
		bson.M{"_id": oid, "userid": userID},
		bson.M{"$set": set},
		false,
	)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return itinerarydomain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return itinerarydomain.ErrNotFound
	}
	deleted, err := r.store.DeleteOne(ctx, store.CollectionItineraries,
		bson.M{"_id": oid, "userid": userID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return itinerarydomain.ErrNotFound
	}
	return nil
}

func (r *repo) ByPreferences(ctx context.Context, filter itinerarydomain.PreferenceFilter, limit int64) ([]itinerarydomain.HistoryEntry, error) {
	query := bson.M{}
	if filter.Theme != "" {
		query["theme"] = filter.Theme
	}
	if filter.Budget != "" {
		query["budget"] = filter.Budget
	}
	if filter.NumDays > 0 {
		query["num_days"] = filter.NumDays
	}
	var entries []itinerarydomain.HistoryEntry
	err := r.store.FindMany(ctx, store.CollectionItineraries, query,
		store.FindOptions{
			Projection: historyProjection,
			Sort:       bson.D{{Key: "created_at", Value: -1}},
			Limit:      limit,
		},
		&entries,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

type labelBucket struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

type avgBucket struct {
	AvgDays float64 `bson:"avg_days"`
}

func (r *repo) Stats(ctx context.Context, now time.Time) (itinerarydomain.Stats, error) {
	var stats itinerarydomain.Stats

	total, err := r.store.Count(ctx, store.CollectionItineraries, bson.M{})
	if err != nil {
		return stats, err
	}
	stats.TotalItineraries = total

	stats.PopularDestinations, err = r.popularBy(ctx, "$destination")
	if err != nil {
		return stats, err
	}
	stats.PopularThemes, err = r.popularBy(ctx, "$theme")
	if err != nil {
		return stats, err
	}

	var averages []avgBucket
	err = r.store.Aggregate(ctx, store.CollectionItineraries, []bson.M{
		{"$group": bson.M{"_id": nil, "avg_days": bson.M{"$avg": "$num_days"}}},
	}, &averages)
	if err != nil {
		return stats, err
	}
	if len(averages) > 0 {
		stats.AverageTripDuration = math.Round(averages[0].AvgDays*10) / 10
	}

	recent, err := r.store.Count(ctx, store.CollectionItineraries,
		bson.M{"created_at": bson.M{"$gte": now.Add(-7 * 24 * time.Hour)}})
	if err != nil {
		return stats, err
	}
	stats.RecentLastSevenDays = recent

	return stats, nil
}

func (r *repo) popularBy(ctx context.Context, field string) ([]itinerarydomain.LabelCount, error) {
	var buckets []labelBucket
	err := r.store.Aggregate(ctx, store.CollectionItineraries, []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 5},
	}, &buckets)
	if err != nil {
		return nil, err
	}
	counts := make([]itinerarydomain.LabelCount, 0, len(buckets))
	for _, b := range buckets {
		counts = append(counts, itinerarydomain.LabelCount{Label: b.ID, Count: b.Count})
	}
	return counts, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.store.DeleteMany(ctx, store.CollectionItineraries,
		bson.M{"created_at": bson.M{"$lt": cutoff}})
}
