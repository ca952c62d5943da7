package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
	"cleanhome/internal/service"
	"cleanhome/internal/wizard"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	if isTransient(err) {
		c.Header("Retry-After", retryAfterSeconds)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// retryAfterSeconds is advertised on conflicts that clear up on their own.
const retryAfterSeconds = "1"

// isTransient reports whether err is a conflict with a concurrent request
// rather than with the booking's state.
func isTransient(err error) bool {
	return errors.Is(err, service.ErrBookingBusy) || errors.Is(err, service.ErrConcurrentUpdate)
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// badRequest rejects a malformed request body or parameter.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// session returns the caller's session, answering 401 when there is none.
func session(c *gin.Context) (auth.Session, bool) {
	s, ok := auth.GetSession(c)
	if !ok || !s.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return auth.Session{}, false
	}
	return s, true
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, redis.ErrDraftNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrUnknownCatalogItem),
		errors.Is(err, service.ErrScheduleInPast),
		errors.Is(err, service.ErrAddressCountry),
		errors.Is(err, service.ErrRateOutOfRange),
		errors.Is(err, service.ErrUnknownTier),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, pricing.ErrInvalidAmount),
		errors.Is(err, wizard.ErrStepIncomplete),
		errors.Is(err, wizard.ErrFirstStep),
		errors.Is(err, wizard.ErrLastStep),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrUnknownLocationSize),
		errors.Is(err, wizard.ErrUnknownService),
		errors.Is(err, wizard.ErrUnknownAddOn),
		errors.Is(err, wizard.ErrUnknownCleaner),
		errors.Is(err, wizard.ErrInvalidAddress),
		errors.Is(err, wizard.ErrAddressCountry),
		errors.Is(err, wizard.ErrInvalidSchedule):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType):
		return http.StatusUnauthorized

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrNotBookingParty),
		errors.Is(err, service.ErrAddressNotOwned),
		errors.Is(err, service.ErrDraftNotOwned),
		errors.Is(err, domain.ErrActionNotPermitted):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, service.ErrConcurrentUpdate),
		errors.Is(err, service.ErrBookingBusy),
		errors.Is(err, service.ErrCleanerUnavailable),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, wizard.ErrAlreadySubmitted):
		return http.StatusConflict

	// Timeouts
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
