package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CORSMiddleware reflects allowed origins from configuration. The browser
// client is the only consumer, so the header set stays small.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
			continue
		}
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowSearch consumes one rate-limit token for the route. It reports false
// after writing the 429 response; limiter outages fail open.
func (s *Server) allowSearch(c *gin.Context, route, userID string) bool {
	if !s.searchLimiter.Enabled() {
		return true
	}

	res, err := s.searchLimiter.Allow(c.Request.Context(), route, userID)
	if err != nil {
		s.log.Warn("rate limiter unavailable", zap.String("route", route), zap.Error(err))
		return true
	}
	if res.Allowed {
		return true
	}

	if res.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, APIResponse{
		Success: false,
		Message: "too many requests, slow down",
	})
	return false
}
