package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
)

type itineraryGenerateRequest struct {
	Destination            string             `json:"destination" binding:"required"`
	Theme                  string             `json:"theme"`
	Activities             string             `json:"activities"`
	NumDays                int                `json:"numDays" binding:"required"`
	Budget                 string             `json:"budget"`
	FlightClass            string             `json:"flightClass"`
	HotelRating            string             `json:"hotelRating"`
	VisaRequired           bool               `json:"visaRequired"`
	InsuranceRequired      bool               `json:"insuranceRequired"`
	ResearchSummary        string             `json:"researchSummary"`
	SelectedFlights        []textparse.Flight `json:"selectedFlights"`
	HotelRestaurantSummary string             `json:"hotelRestaurantSummary"`
	UserID                 string             `json:"userId" binding:"required"`
}

type itineraryUpdateRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Theme      string `json:"theme"`
	Activities string `json:"activities"`
	Budget     string `json:"budget"`
}

func (s *Server) GenerateItinerary(c *gin.Context) {
	var req itineraryGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}
	if !s.allowSearch(c, "itinerary", req.UserID) {
		return
	}

	// Paywall gate: basic users consume one monthly credit per generation.
	if err := s.usageSvc.CheckAndConsume(c.Request.Context(), req.UserID); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.itinerarySvc.Generate(c.Request.Context(), itinerarydomain.GenerateRequest{
		Destination:            req.Destination,
		Theme:                  req.Theme,
		Activities:             req.Activities,
		NumDays:                req.NumDays,
		Budget:                 req.Budget,
		FlightClass:            req.FlightClass,
		HotelRating:            req.HotelRating,
		VisaRequired:           req.VisaRequired,
		InsuranceRequired:      req.InsuranceRequired,
		ResearchSummary:        req.ResearchSummary,
		SelectedFlights:        req.SelectedFlights,
		HotelRestaurantSummary: req.HotelRestaurantSummary,
		UserID:                 req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary generated", gin.H{
		"id":          result.ID,
		"destination": result.Destination,
		"numDays":     result.NumDays,
		"theme":       result.Theme,
		"plan":        result.Plan,
		"cached":      result.Cached,
	})
}

func (s *Server) ItineraryHistory(c *gin.Context) {
	userID := c.Query("userId")
	limit := parseLimit(c.Query("limit"))

	entries, err := s.itinerarySvc.HistoryByUser(c.Request.Context(), userID, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary history", gin.H{"itineraries": entries})
}

func (s *Server) ItinerariesByPreferences(c *gin.Context) {
	numDays, _ := strconv.Atoi(c.Query("numDays"))
	filter := itinerarydomain.PreferenceFilter{
		Theme:   c.Query("theme"),
		Budget:  c.Query("budget"),
		NumDays: numDays,
	}

	entries, err := s.itinerarySvc.ByPreferences(c.Request.Context(), filter, parseLimit(c.Query("limit")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itineraries by preferences", gin.H{"itineraries": entries})
}

func (s *Server) ItineraryStats(c *gin.Context) {
	stats, err := s.itinerarySvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary stats", stats)
}

func (s *Server) GetItinerary(c *gin.Context) {
	rec, err := s.itinerarySvc.GetByID(c.Request.Context(), c.Param("id"), c.Query("userId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary", rec)
}

func (s *Server) UpdateItinerary(c *gin.Context) {
	var req itineraryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}

	err := s.itinerarySvc.Update(c.Request.Context(), c.Param("id"), req.UserID, itinerarydomain.UpdateRequest{
		Theme:      req.Theme,
		Activities: req.Activities,
		Budget:     req.Budget,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary updated", nil)
}

func (s *Server) DeleteItinerary(c *gin.Context) {
	if err := s.itinerarySvc.Delete(c.Request.Context(), c.Param("id"), c.Query("userId")); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "itinerary deleted", nil)
}
