package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
)

// APIResponse is the envelope every travel endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

// bindingError wraps a gin binding failure so the mapper can tell malformed
// input apart from domain errors.
type bindingError struct {
	err error
}

func (e bindingError) Error() string { return e.err.Error() }
func (e bindingError) Unwrap() error { return e.err }

func invalidRequest(err error) error {
	return bindingError{err: err}
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, APIResponse{Success: false, Message: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case isValidationError(err):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, usagedomain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "monthly quota exceeded, upgrade to continue"
	case errors.Is(err, itinerarydomain.ErrNotFound):
		return http.StatusNotFound, "itinerary not found"
	case errors.Is(err, subscriptiondomain.ErrMissingUser),
		errors.Is(err, subscriptiondomain.ErrMissingRedirectURL),
		errors.Is(err, subscriptiondomain.ErrMissingSessionID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, subscriptiondomain.ErrVerificationFailed):
		return http.StatusBadRequest, "payment verification failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isValidationError(err error) bool {
	var bErr bindingError
	if errors.As(err, &bErr) {
		return true
	}
	switch {
	case errors.Is(err, flightdomain.ErrInvalidAirportCode),
		errors.Is(err, flightdomain.ErrInvalidDate),
		errors.Is(err, flightdomain.ErrReturnBeforeDepart),
		errors.Is(err, hoteldomain.ErrMissingDestination),
		errors.Is(err, researchdomain.ErrMissingDestination),
		errors.Is(err, researchdomain.ErrInvalidNumDays),
		errors.Is(err, itinerarydomain.ErrMissingDestination),
		errors.Is(err, itinerarydomain.ErrInvalidNumDays),
		errors.Is(err, usagedomain.ErrMissingUser):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request errors for the access log.
func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusUnprocessableEntity:
		return "validation_error", err.Error()
	case status == http.StatusTooManyRequests:
		return "quota_exceeded", "quota_exceeded"
	case status == http.StatusNotFound:
		return "not_found", "not_found"
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return "client_error", err.Error()
	default:
		return "internal_error", err.Error()
	}
}
