package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
)

type researchRequest struct {
	Destination string `json:"destination" binding:"required"`
	Theme       string `json:"theme"`
	Activities  string `json:"activities"`
	NumDays     int    `json:"numDays" binding:"required"`
	Budget      string `json:"budget"`
	FlightClass string `json:"flightClass"`
	HotelRating string `json:"hotelRating"`
	UserID      string `json:"userId"`
}

func (s *Server) ResearchDestination(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}
	if !s.allowSearch(c, "research", req.UserID) {
		return
	}

	result, err := s.researchSvc.Research(c.Request.Context(), researchdomain.Request{
		Destination: req.Destination,
		Theme:       req.Theme,
		Activities:  req.Activities,
		NumDays:     req.NumDays,
		Budget:      req.Budget,
		FlightClass: req.FlightClass,
		HotelRating: req.HotelRating,
		UserID:      req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "destination research completed", gin.H{
		"destination": result.Destination,
		"research":    result.Research,
		"cached":      result.Cached,
	})
}

func (s *Server) ResearchHistory(c *gin.Context) {
	destination := c.Param("destination")
	limit := parseLimit(c.Query("limit"))

	entries, err := s.researchSvc.HistoryByDestination(c.Request.Context(), destination, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "destination research history", gin.H{"searches": entries})
}
