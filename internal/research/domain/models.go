// Package domain contains persistence models for destination research.
package domain

import (
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CacheWindow = 12 * time.Hour
	Retention   = 60 * 24 * time.Hour
)

// Request is a normalized destination-research query.
type Request struct {
	Destination string
	Theme       string
	Activities  string
	NumDays     int
	Budget      string
	FlightClass string
	HotelRating string
	UserID      string
}

// Record is one stored research result.
type Record struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Destination string             `bson:"destination" json:"destination"`
	Theme       string             `bson:"theme" json:"theme"`
	NumDays     int                `bson:"num_days" json:"num_days"`
	Budget      string             `bson:"budget,omitempty" json:"budget,omitempty"`
	Research    textparse.Research `bson:",inline" json:"research"`
	RawResponse string             `bson:"raw_response,omitempty" json:"-"`
	OwnerUserID string             `bson:"userid" json:"userid"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Result is what the service hands back to the HTTP layer.
type Result struct {
	Destination string
	Research    textparse.Research
	Cached      bool
}

// HistoryEntry is the projected shape of one past research run.
type HistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Destination string             `bson:"destination" json:"destination"`
	Theme       string             `bson:"theme" json:"theme"`
	NumDays     int                `bson:"num_days" json:"num_days"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
