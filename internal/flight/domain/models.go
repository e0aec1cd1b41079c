// Package domain contains persistence models for flight searches.
package domain

import (
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// CacheWindow is how long a stored search satisfies an identical query.
	CacheWindow = 2 * time.Hour
	// Retention bounds how long search records are kept before sweeping.
	Retention = 30 * 24 * time.Hour
)

// SearchRequest is a normalized round-trip flight query.
type SearchRequest struct {
	Source        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	UserID        string
}

// SearchRecord is one stored flight search with its parsed results.
type SearchRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Source        string             `bson:"source" json:"source"`
	Destination   string             `bson:"destination" json:"destination"`
	DepartureDate string             `bson:"departure_date" json:"departure_date"`
	ReturnDate    string             `bson:"return_date" json:"return_date"`
	Flights       []textparse.Flight `bson:"processed_flights" json:"processed_flights"`
	RawResponse   string             `bson:"raw_response,omitempty" json:"-"`
	OwnerUserID   string             `bson:"userid" json:"userid"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// SearchResult is what the service hands back to the HTTP layer.
type SearchResult struct {
	Flights []textparse.Flight
	Cached  bool
}

// HistoryEntry is the projected shape of one past search.
type HistoryEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Source        string             `bson:"source" json:"source"`
	Destination   string             `bson:"destination" json:"destination"`
	DepartureDate string             `bson:"departure_date" json:"departure_date"`
	ReturnDate    string             `bson:"return_date" json:"return_date"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
