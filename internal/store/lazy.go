package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotConnected = errors.New("store: not connected")

// lazyMongo defers to the mongo backend once the lifecycle OnStart hook has
// established the connection. Construction happens before fx starts the app,
// so the provided Store value cannot hold the live database directly.
type lazyMongo struct {
	inner Store
}

func (l *lazyMongo) get() (Store, error) {
	if l.inner == nil {
		return nil, errNotConnected
	}
	return l.inner, nil
}

func (l *lazyMongo) Insert(ctx context.Context, collection string, doc any) (string, error) {
	s, err := l.get()
	if err != nil {
		return "", err
	}
	return s.Insert(ctx, collection, doc)
}

func (l *lazyMongo) FindOne(ctx context.Context, collection string, filter bson.M, sort bson.D, out any) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.FindOne(ctx, collection, filter, sort, out)
}

func (l *lazyMongo) FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.FindMany(ctx, collection, filter, opts, out)
}

func (l *lazyMongo) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (UpdateResult, error) {
	s, err := l.get()
	if err != nil {
		return UpdateResult{}, err
	}
	return s.UpdateOne(ctx, collection, filter, update, upsert)
}

func (l *lazyMongo) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.DeleteOne(ctx, collection, filter)
}

func (l *lazyMongo) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.DeleteMany(ctx, collection, filter)
}

func (l *lazyMongo) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.Count(ctx, collection, filter)
}

func (l *lazyMongo) Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.Aggregate(ctx, collection, pipeline, out)
}

func (l *lazyMongo) EnsureIndex(ctx context.Context, collection string, keys bson.D, unique bool) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.EnsureIndex(ctx, collection, keys, unique)
}
