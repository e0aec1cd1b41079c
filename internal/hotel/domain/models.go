// Package domain contains persistence models for hotel and restaurant searches.
package domain

import (
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CacheWindow = 6 * time.Hour
	Retention   = 30 * 24 * time.Hour
)

// SearchRequest is a normalized hotels-and-restaurants query.
type SearchRequest struct {
	Destination         string
	Theme               string
	ActivityPreferences string
	HotelRating         string
	Budget              string
	UserID              string
}

// SearchRecord is one stored search with its parsed recommendations.
type SearchRecord struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Destination string                 `bson:"destination" json:"destination"`
	Theme       string                 `bson:"theme" json:"theme"`
	HotelRating string                 `bson:"hotel_rating" json:"hotel_rating"`
	Budget      string                 `bson:"budget,omitempty" json:"budget,omitempty"`
	Hotels      []textparse.Hotel      `bson:"hotels" json:"hotels"`
	Restaurants []textparse.Restaurant `bson:"restaurants" json:"restaurants"`
	RawResponse string                 `bson:"raw_response,omitempty" json:"-"`
	OwnerUserID string                 `bson:"userid" json:"userid"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}

// SearchResult is what the service hands back to the HTTP layer.
type SearchResult struct {
	Hotels      []textparse.Hotel
	Restaurants []textparse.Restaurant
	Cached      bool
}

// HistoryEntry is the projected shape of one past search.
type HistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Destination string             `bson:"destination" json:"destination"`
	Theme       string             `bson:"theme" json:"theme"`
	HotelRating string             `bson:"hotel_rating" json:"hotel_rating"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
