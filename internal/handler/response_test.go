package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
	"cleanhome/internal/service"
	"cleanhome/internal/wizard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("load draft: %w", redis.ErrDraftNotFound), http.StatusNotFound},
		{service.ErrScheduleInPast, http.StatusBadRequest},
		{fmt.Errorf("%w: rate", service.ErrRateOutOfRange), http.StatusBadRequest},
		{pricing.ErrInvalidAmount, http.StatusBadRequest},
		{wizard.ErrStepIncomplete, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrNotBookingParty, http.StatusForbidden},
		{domain.ErrActionNotPermitted, http.StatusForbidden},
		{fmt.Errorf("%w: cannot cancel", domain.ErrInvalidTransition), http.StatusConflict},
		{service.ErrCleanerUnavailable, http.StatusConflict},
		{wizard.ErrAlreadySubmitted, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorToHTTPStatus(tt.err))
		})
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestRespondError_ExposesClientErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, service.ErrCleanerUnavailable)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrCleanerUnavailable.Error())
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestRespondError_TransientConflictsRetryable(t *testing.T) {
	for _, err := range []error{
		service.ErrBookingBusy,
		fmt.Errorf("%w: expected PENDING, found CONFIRMED", service.ErrConcurrentUpdate),
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, err)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, retryAfterSeconds, w.Header().Get("Retry-After"))
	}
}

func TestSession_RequiresAuthentication(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := session(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
