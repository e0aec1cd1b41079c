// Package domain contains the usage metering model.
package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultMonthlyLimit is the free-tier itinerary allowance per calendar month.
const DefaultMonthlyLimit = 15

// Counter tracks one user's consumption for one calendar month.
// (userid, month) carries a unique index; the counter only ever increments.
type Counter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userid" json:"userid"`
	Month     string             `bson:"month" json:"month"`
	PostCount int                `bson:"post_count" json:"post_count"`
}
