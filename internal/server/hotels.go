package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
)

type hotelSearchRequest struct {
	Destination         string `json:"destination" binding:"required"`
	Theme               string `json:"theme"`
	ActivityPreferences string `json:"activityPreferences"`
	HotelRating         string `json:"hotelRating"`
	Budget              string `json:"budget"`
	UserID              string `json:"userId" binding:"required"`
}

func (s *Server) SearchHotelsRestaurants(c *gin.Context) {
	var req hotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}
	if !s.allowSearch(c, "hotels", req.UserID) {
		return
	}

	result, err := s.hotelSvc.Search(c.Request.Context(), hoteldomain.SearchRequest{
		Destination:         req.Destination,
		Theme:               req.Theme,
		ActivityPreferences: req.ActivityPreferences,
		HotelRating:         req.HotelRating,
		Budget:              req.Budget,
		UserID:              req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "hotel and restaurant search completed", gin.H{
		"hotels":      result.Hotels,
		"restaurants": result.Restaurants,
		"cached":      result.Cached,
	})
}

func (s *Server) HotelSearchHistory(c *gin.Context) {
	destination := c.Param("destination")
	limit := parseLimit(c.Query("limit"))

	entries, err := s.hotelSvc.HistoryByDestination(c.Request.Context(), destination, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "hotel and restaurant search history", gin.H{"searches": entries})
}
