package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "RO", cfg.Booking.Country)
	assert.Equal(t, 30*time.Second, cfg.Booking.BadgeCountsTTL)
	assert.Equal(t, int64(200), cfg.Travel.PerKm)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_COUNTRY", "HU")
	t.Setenv("BOOKING_LOOKUP_TIMEOUT", "2s")
	t.Setenv("TRAVEL_FREE_RADIUS_KM", "7.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "HU", cfg.Booking.Country)
	assert.Equal(t, 2*time.Second, cfg.Booking.LookupTimeout)
	assert.Equal(t, 7.5, cfg.Travel.FreeRadiusKm)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
