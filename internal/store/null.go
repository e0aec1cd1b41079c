package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nullStore is the offline backend: every operation succeeds with an empty
// result, letting the rest of the system run without a live store.
type nullStore struct{}

// NewNull returns the no-op store backend.
func NewNull() Store {
	return nullStore{}
}

func (nullStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

func (nullStore) FindOne(ctx context.Context, collection string, filter bson.M, sort bson.D, out any) error {
	return ErrNoDocuments
}

func (nullStore) FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error {
	return nil
}

func (nullStore) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (UpdateResult, error) {
	if upsert {
		return UpdateResult{UpsertedID: primitive.NewObjectID().Hex()}, nil
	}
	return UpdateResult{}, nil
}

func (nullStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return 0, nil
}

func (nullStore) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return 0, nil
}

func (nullStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return 0, nil
}

func (nullStore) Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error {
	return nil
}

func (nullStore) EnsureIndex(ctx context.Context, collection string, keys bson.D, unique bool) error {
	return nil
}
