package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type flightDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Source    string             `bson:"source"`
	Dest      string             `bson:"destination"`
	CreatedAt time.Time          `bson:"created_at"`
}

func TestMemoryInsertAndFindOneNewestFirst(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	older := flightDoc{Source: "DEL", Dest: "BOM", CreatedAt: base}
	newer := flightDoc{Source: "DEL", Dest: "BOM", CreatedAt: base.Add(time.Hour)}
	if _, err := s.Insert(ctx, "flights", older); err != nil {
		t.Fatalf("insert older: %v", err)
	}
	if _, err := s.Insert(ctx, "flights", newer); err != nil {
		t.Fatalf("insert newer: %v", err)
	}

	var got flightDoc
	err := s.FindOne(ctx, "flights", bson.M{"source": "DEL", "destination": "BOM"},
		bson.D{{Key: "created_at", Value: -1}}, &got)
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if !got.CreatedAt.Equal(newer.CreatedAt) {
		t.Fatalf("expected newest record, got created_at=%v", got.CreatedAt)
	}
}

func TestMemoryTimeRangeFilter(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	if _, err := s.Insert(ctx, "flights", flightDoc{Source: "DEL", Dest: "BOM", CreatedAt: base}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got flightDoc
	err := s.FindOne(ctx, "flights", bson.M{
		"source":     "DEL",
		"created_at": bson.M{"$gte": base.Add(time.Minute)},
	}, nil, &got)
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for stale window, got %v", err)
	}

	err = s.FindOne(ctx, "flights", bson.M{
		"source":     "DEL",
		"created_at": bson.M{"$gte": base.Add(-time.Minute)},
	}, nil, &got)
	if err != nil {
		t.Fatalf("expected fresh hit, got %v", err)
	}
}

func TestMemoryUpsertIncrement(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	res, err := s.UpdateOne(ctx, "usage",
		bson.M{"userid": "u1", "month": "2025-07"},
		bson.M{"$inc": bson.M{"post_count": 1}},
		true,
	)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if res.UpsertedID == "" {
		t.Fatal("expected upserted id on first increment")
	}

	if _, err := s.UpdateOne(ctx, "usage",
		bson.M{"userid": "u1", "month": "2025-07"},
		bson.M{"$inc": bson.M{"post_count": 1}},
		true,
	); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var counter struct {
		PostCount int64 `bson:"post_count"`
	}
	if err := s.FindOne(ctx, "usage", bson.M{"userid": "u1", "month": "2025-07"}, nil, &counter); err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if counter.PostCount != 2 {
		t.Fatalf("expected post_count=2, got %d", counter.PostCount)
	}
}

func TestMemoryUniqueIndexConditionalIncrement(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.EnsureIndex(ctx, "usage", bson.D{{Key: "userid", Value: 1}, {Key: "month", Value: 1}}, true); err != nil {
		t.Fatalf("ensureIndex: %v", err)
	}

	const ceiling = 3
	allowed := 0
	for i := 0; i < ceiling+2; i++ {
		_, err := s.UpdateOne(ctx, "usage",
			bson.M{"userid": "u1", "month": "2025-07", "post_count": bson.M{"$lt": ceiling}},
			bson.M{"$inc": bson.M{"post_count": 1}},
			true,
		)
		if errors.Is(err, ErrDuplicateKey) {
			continue
		}
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		allowed++
	}
	if allowed != ceiling {
		t.Fatalf("expected %d allowed increments, got %d", ceiling, allowed)
	}
}

func TestMemoryDeleteManyIdempotent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	cutoff := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		doc := flightDoc{Source: "DEL", Dest: "BOM", CreatedAt: cutoff.Add(-time.Duration(i+1) * time.Hour)}
		if _, err := s.Insert(ctx, "flights", doc); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	deleted, err := s.DeleteMany(ctx, "flights", bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deletions, got %d", deleted)
	}

	deleted, err = s.DeleteMany(ctx, "flights", bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected idempotent second sweep, got %d deletions", deleted)
	}
}

func TestMemoryAggregateGroupSortLimit(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, dest := range []string{"Paris", "Paris", "Paris", "Tokyo", "Tokyo", "Rome"} {
		if _, err := s.Insert(ctx, "itineraries", bson.M{"destination": dest, "num_days": int32(4)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	var rows []struct {
		Destination string `bson:"_id"`
		Count       int64  `bson:"count"`
	}
	err := s.Aggregate(ctx, "itineraries", []bson.M{
		{"$group": bson.M{"_id": "$destination", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 2},
	}, &rows)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Destination != "Paris" || rows[0].Count != 3 {
		t.Fatalf("expected Paris x3 first, got %+v", rows[0])
	}
	if rows[1].Destination != "Tokyo" || rows[1].Count != 2 {
		t.Fatalf("expected Tokyo x2 second, got %+v", rows[1])
	}
}

func TestNullStoreReturnsEmptyDefaults(t *testing.T) {
	s := NewNull()
	ctx := context.Background()

	id, err := s.Insert(ctx, "flights", bson.M{"source": "DEL"})
	if err != nil || id == "" {
		t.Fatalf("null insert: id=%q err=%v", id, err)
	}

	var doc flightDoc
	if err := s.FindOne(ctx, "flights", bson.M{}, nil, &doc); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}

	count, err := s.Count(ctx, "flights", bson.M{})
	if err != nil || count != 0 {
		t.Fatalf("null count: count=%d err=%v", count, err)
	}
}
