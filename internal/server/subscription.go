package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	UserID     string `json:"userId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type verifyPaymentRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}

	session, err := s.subscriptionSvc.CreateCheckoutSession(c.Request.Context(), req.UserID, req.SuccessURL, req.CancelURL)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "checkout session created", session)
}

func (s *Server) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequest(err))
		return
	}

	sub, err := s.subscriptionSvc.VerifyPayment(c.Request.Context(), req.UserID, req.SessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "payment verified", gin.H{
		"plan":     sub.Plan,
		"status":   sub.Status,
		"endDate":  sub.EndDate,
		"verified": true,
	})
}

func (s *Server) SubscriptionStatus(c *gin.Context) {
	info, err := s.subscriptionSvc.Status(c.Request.Context(), c.Query("userId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "subscription status", info)
}
