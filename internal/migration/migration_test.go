package migration

import (
	"context"
	"testing"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureIndexesIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, EnsureIndexes(ctx, mem))
	require.NoError(t, EnsureIndexes(ctx, mem))

	// The unique usage index must reject a second counter for the same
	// user and month.
	_, err := mem.Insert(ctx, store.CollectionUsage,
		bson.M{"userid": "user-1", "month": "2026-03", "post_count": 1})
	require.NoError(t, err)
	_, err = mem.Insert(ctx, store.CollectionUsage,
		bson.M{"userid": "user-1", "month": "2026-03", "post_count": 1})
	require.ErrorIs(t, err, store.ErrDuplicateKey)
}
