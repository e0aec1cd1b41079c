package repository

import (
	"context"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	"go.mongodb.org/mongo-driver/bson"
)

type repo struct {
	store store.Store
}

func Provide(s store.Store) subscriptiondomain.Repository {
	return &repo{store: s}
}

func (r *repo) Get(ctx context.Context, userID string) (*subscriptiondomain.Subscription, error) {
	var sub subscriptiondomain.Subscription
	err := r.store.FindOne(ctx, store.CollectionSubscriptions,
		bson.M{"userid": userID}, nil, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repo) Upsert(ctx context.Context, sub *subscriptiondomain.Subscription) error {
	_, err := r.store.UpdateOne(ctx, store.CollectionSubscriptions,
		bson.M{"userid": sub.UserID},
		bson.M{"$set": bson.M{
			"plan":                  sub.Plan,
			"status":                sub.Status,
			"start_date":            sub.StartDate,
			"end_date":              sub.EndDate,
			"stripe_session_id":     sub.PaymentSessionID,
			"stripe_payment_intent": sub.PaymentIntentID,
			"last_verified":         sub.LastVerifiedAt,
		}},
		true,
	)
	return err
}
