package repository

import (
	"context"
	"errors"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
	"go.mongodb.org/mongo-driver/bson"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) usagedomain.Repository {
	return &repo{store: s}
}

func (r *repo) Count(ctx context.Context, userID, month string) (int, error) {
	var counter usagedomain.Counter
	err := r.store.FindOne(ctx, store.CollectionUsage,
		bson.M{"userid": userID, "month": month}, nil, &counter)
	if errors.Is(err, store.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.PostCount, nil
}

// IncrementIfBelow relies on the unique (userid, month) index: when the
// counter sits at the ceiling the filter matches nothing and the upsert
// collides with the existing document, which reports as a duplicate key.
//
// Two writers racing on a month with no counter yet both try to upsert;
// the loser's duplicate key only means the document now exists, not that
// the ceiling was hit, so one retry re-runs the conditional increment
// against it. A second duplicate key can only come from the ceiling.
func (r *repo) IncrementIfBelow(ctx context.Context, userID, month string, ceiling int) (bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		_, err := r.store.UpdateOne(ctx, store.CollectionUsage,
			bson.M{
				"userid":     userID,
				"month":      month,
				"post_count": bson.M{"$lt": ceiling},
			},
			bson.M{"$inc": bson.M{"post_count": 1}},
			true,
		)
		if errors.Is(err, store.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
