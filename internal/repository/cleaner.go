package repository

import (
	"context"

	"cleanhome/internal/domain"
)

// CleanerRepository defines the persistence operations for cleaner profiles
// and tier rate ranges.
type CleanerRepository interface {
	// Save inserts or updates the profile of a cleaner (keyed by user ID).
	Save(ctx context.Context, profile *domain.CleanerProfile) error

	// GetByUserID retrieves the profile of a cleaner user.
	GetByUserID(ctx context.Context, userID string) (*domain.CleanerProfile, error)

	// ListActiveInArea returns active cleaners serving a city. When postalCode
	// is not empty only cleaners whose postal prefix matches are returned.
	ListActiveInArea(ctx context.Context, city, postalCode string) ([]*domain.CleanerProfile, error)

	// UpdateBaseLocation sets the base coordinates of a cleaner.
	UpdateBaseLocation(ctx context.Context, userID string, lat, lng float64) error

	// TierRateRanges returns the allowed hourly rate range of every tier.
	TierRateRanges(ctx context.Context) ([]domain.TierRateRange, error)
}
