package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoStore struct {
	db *mongo.Database
}

// NewMongo wraps a connected mongo database.
func NewMongo(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

// Connect dials the mongo deployment and verifies it with a ping.
func Connect(ctx context.Context, url, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, client.Database(database), nil
}

func (s *mongoStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", wrapErr("insert", collection, translateMongoErr(err))
	}
	return idToString(res.InsertedID), nil
}

func (s *mongoStore) FindOne(ctx context.Context, collection string, filter bson.M, sort bson.D, out any) error {
	opts := options.FindOne()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	err := s.db.Collection(collection).FindOne(ctx, filter, opts).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNoDocuments
	}
	return wrapErr("findOne", collection, err)
}

func (s *mongoStore) FindMany(ctx context.Context, collection string, filter bson.M, fo FindOptions, out any) error {
	opts := options.Find()
	if len(fo.Projection) > 0 {
		opts.SetProjection(fo.Projection)
	}
	if len(fo.Sort) > 0 {
		opts.SetSort(fo.Sort)
	}
	if fo.Limit > 0 {
		opts.SetLimit(fo.Limit)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return wrapErr("find", collection, err)
	}
	return wrapErr("find", collection, cursor.All(ctx, out))
}

func (s *mongoStore) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (UpdateResult, error) {
	opts := options.Update().SetUpsert(upsert)
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return UpdateResult{}, wrapErr("updateOne", collection, translateMongoErr(err))
	}
	return UpdateResult{
		Matched:    res.MatchedCount,
		Modified:   res.ModifiedCount,
		UpsertedID: idToString(res.UpsertedID),
	}, nil
}

func (s *mongoStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, wrapErr("deleteOne", collection, err)
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, wrapErr("deleteMany", collection, err)
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapErr("count", collection, err)
	}
	return count, nil
}

func (s *mongoStore) Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error {
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return wrapErr("aggregate", collection, err)
	}
	return wrapErr("aggregate", collection, cursor.All(ctx, out))
}

func (s *mongoStore) EnsureIndex(ctx context.Context, collection string, keys bson.D, unique bool) error {
	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(unique),
	}
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model)
	return wrapErr("createIndex", collection, err)
}

func translateMongoErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func idToString(id any) string {
	if id == nil {
		return ""
	}
	if oid, ok := id.(interface{ Hex() string }); ok {
		return oid.Hex()
	}
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}
