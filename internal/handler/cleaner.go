package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/service"
)

// CleanerHandler handles HTTP requests for cleaner profiles and availability.
type CleanerHandler struct {
	cleanerService      *service.CleanerService
	availabilityService *service.AvailabilityService
}

// NewCleanerHandler creates a new CleanerHandler.
func NewCleanerHandler(cleanerService *service.CleanerService, availabilityService *service.AvailabilityService) *CleanerHandler {
	return &CleanerHandler{
		cleanerService:      cleanerService,
		availabilityService: availabilityService,
	}
}

// UpdateLocationRequest is the HTTP request body for moving a cleaner's base.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CleanerProfileResponse is the HTTP representation of a cleaner profile.
type CleanerProfileResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	DisplayName    string  `json:"display_name"`
	Bio            string  `json:"bio,omitempty"`
	Tier           string  `json:"tier"`
	HourlyRate     int64   `json:"hourly_rate"`
	HourlyRateText string  `json:"hourly_rate_text"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	City           string  `json:"city"`
	PostalCode     string  `json:"postal_code,omitempty"`
	BaseLat        float64 `json:"base_lat"`
	BaseLng        float64 `json:"base_lng"`
	Active         bool    `json:"active"`
}

func toCleanerProfileResponse(p *domain.CleanerProfile) CleanerProfileResponse {
	return CleanerProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		DisplayName:    p.DisplayName,
		Bio:            p.Bio,
		Tier:           string(p.Tier),
		HourlyRate:     p.HourlyRate,
		HourlyRateText: pricing.FormatAmount(p.HourlyRate),
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		City:           p.City,
		PostalCode:     p.PostalCode,
		BaseLat:        p.BaseLat,
		BaseLng:        p.BaseLng,
		Active:         p.Active,
	}
}

// SetupProfile handles PUT /v1/cleaners/profile
func (h *CleanerHandler) SetupProfile(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req service.SetupProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	profile, err := h.cleanerService.SetupProfile(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toCleanerProfileResponse(profile))
}

// GetProfile handles GET /v1/cleaners/profile
func (h *CleanerHandler) GetProfile(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	profile, err := h.cleanerService.GetProfile(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toCleanerProfileResponse(profile))
}

// UpdateLocation handles POST /v1/cleaners/location
func (h *CleanerHandler) UpdateLocation(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.cleanerService.UpdateLocation(c.Request.Context(), s, req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "location updated"})
}

// Available handles GET /v1/cleaners/available?date=&time=&duration=&city=&postal_code=
func (h *CleanerHandler) Available(c *gin.Context) {
	duration, err := strconv.ParseFloat(c.DefaultQuery("duration", "0"), 64)
	if err != nil {
		badRequest(c, "duration must be a number of hours")
		return
	}

	cleaners, err := h.availabilityService.AvailableCleaners(c.Request.Context(), domain.AvailabilityQuery{
		Date:       c.Query("date"),
		StartTime:  c.Query("time"),
		Duration:   duration,
		City:       c.Query("city"),
		PostalCode: c.Query("postal_code"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"cleaners": cleaners})
}
