package repository

import (
	"context"
	"testing"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// raceStore injects duplicate-key errors on the first UpdateOne calls,
// standing in for a concurrent writer that upserted the counter first.
type raceStore struct {
	store.Store
	dupsLeft int
}

func (s *raceStore) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (store.UpdateResult, error) {
	if s.dupsLeft > 0 {
		s.dupsLeft--
		// The racing writer's upsert has to land before ours is retried.
		if _, err := s.Store.UpdateOne(ctx, collection,
			bson.M{"userid": filter["userid"], "month": filter["month"]},
			bson.M{"$inc": bson.M{"post_count": 0}},
			true,
		); err != nil {
			return store.UpdateResult{}, err
		}
		return store.UpdateResult{}, store.ErrDuplicateKey
	}
	return s.Store.UpdateOne(ctx, collection, filter, update, upsert)
}

func newUsageMemory(t *testing.T) store.Store {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.EnsureIndex(context.Background(), store.CollectionUsage,
		bson.D{{Key: "userid", Value: 1}, {Key: "month", Value: 1}}, true))
	return mem
}

func TestIncrementIfBelowRetriesLostUpsertRace(t *testing.T) {
	ctx := context.Background()
	repo := Provide(&raceStore{Store: newUsageMemory(t), dupsLeft: 1})

	allowed, err := repo.IncrementIfBelow(ctx, "u1", "2026-03", 5)
	require.NoError(t, err)
	require.True(t, allowed)

	count, err := repo.Count(ctx, "u1", "2026-03")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestIncrementIfBelowDeniesAtCeiling(t *testing.T) {
	ctx := context.Background()
	repo := Provide(newUsageMemory(t))

	for i := 0; i < 3; i++ {
		allowed, err := repo.IncrementIfBelow(ctx, "u1", "2026-03", 3)
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, err := repo.IncrementIfBelow(ctx, "u1", "2026-03", 3)
	require.NoError(t, err)
	require.False(t, allowed)

	count, err := repo.Count(ctx, "u1", "2026-03")
	require.NoError(t, err)
	require.Equal(t, 3, count)
}
