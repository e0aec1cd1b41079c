// Package domain contains persistence models for generated itineraries.
package domain

import (
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CacheWindow = 24 * time.Hour
	Retention   = 90 * 24 * time.Hour
)

// GenerateRequest carries everything the planner needs for one itinerary.
// Research and hotel summaries come from the earlier pipeline steps.
type GenerateRequest struct {
	Destination            string
	Theme                  string
	Activities             string
	NumDays                int
	Budget                 string
	FlightClass            string
	HotelRating            string
	VisaRequired           bool
	InsuranceRequired      bool
	ResearchSummary        string
	SelectedFlights        []textparse.Flight
	HotelRestaurantSummary string
	UserID                 string
}

// Record is one stored itinerary. Itineraries are private to their owner,
// unlike the shared search caches.
type Record struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Destination string              `bson:"destination" json:"destination"`
	Theme       string              `bson:"theme" json:"theme"`
	Activities  string              `bson:"activities,omitempty" json:"activities,omitempty"`
	NumDays     int                 `bson:"num_days" json:"num_days"`
	Budget      string              `bson:"budget,omitempty" json:"budget,omitempty"`
	FlightClass string              `bson:"flight_class,omitempty" json:"flight_class,omitempty"`
	HotelRating string              `bson:"hotel_rating,omitempty" json:"hotel_rating,omitempty"`
	Plan        textparse.Itinerary `bson:",inline" json:"plan"`
	RawResponse string              `bson:"raw_response,omitempty" json:"-"`
	OwnerUserID string              `bson:"userid" json:"userid"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Result is what the service hands back to the HTTP layer.
type Result struct {
	ID          string
	Destination string
	NumDays     int
	Theme       string
	Plan        textparse.Itinerary
	Cached      bool
}

// UpdateRequest holds the caller-editable itinerary fields.
type UpdateRequest struct {
	Theme      string
	Activities string
	Budget     string
}

// PreferenceFilter narrows the itinerary listing.
type PreferenceFilter struct {
	Theme   string
	Budget  string
	NumDays int
}

// HistoryEntry is the projected shape of one past itinerary.
type HistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Destination string             `bson:"destination" json:"destination"`
	Theme       string             `bson:"theme" json:"theme"`
	NumDays     int                `bson:"num_days" json:"num_days"`
	Budget      string             `bson:"budget,omitempty" json:"budget,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// LabelCount is one bucket of a popularity aggregation.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats summarizes the itinerary collection.
type Stats struct {
	TotalItineraries    int64        `json:"total_itineraries"`
	PopularDestinations []LabelCount `json:"popular_destinations"`
	PopularThemes       []LabelCount `json:"popular_themes"`
	AverageTripDuration float64      `json:"average_trip_duration"`
	RecentLastSevenDays int64        `json:"recent_itineraries_7_days"`
}
