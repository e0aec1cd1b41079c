package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
)

type flightSearchRequest struct {
	Source        string `json:"source" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departureDate" binding:"required"`
	ReturnDate    string `json:"returnDate" binding:"required"`
	UserID        string `json:"userId" binding:"required"`
}

func (s *Server) SearchFlights(c *gin.Context) {
	var req flightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}
	if !s.allowSearch(c, "flights", req.UserID) {
		return
	}

	result, err := s.flightSvc.Search(c.Request.Context(), flightdomain.SearchRequest{
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		UserID:        req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "flight search completed", gin.H{
		"flights": result.Flights,
		"cached":  result.Cached,
	})
}

func (s *Server) FlightSearchHistory(c *gin.Context) {
	userID := c.Query("userId")
	limit := parseLimit(c.Query("limit"))

	entries, err := s.flightSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "flight search history", gin.H{"searches": entries})
}

func parseLimit(raw string) int64 {
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
