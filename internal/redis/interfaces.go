package redis

import (
	"context"
	"time"

	"cleanhome/internal/domain"
)

// LocationStoreInterface defines the interface for cleaner base locations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, cleanerID string, lat, lng float64) error
	GetLocation(ctx context.Context, cleanerID string) (*CleanerLocation, error)
	RemoveLocation(ctx context.Context, cleanerID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, bookingID string) error
	AcquireCleanerDayLock(ctx context.Context, cleanerID, date string, ttl time.Duration) (bool, error)
	ReleaseCleanerDayLock(ctx context.Context, cleanerID, date string) error
}

// CacheStoreInterface defines the cached read models.
type CacheStoreInterface interface {
	GetCatalog(ctx context.Context) (*domain.Catalog, error)
	SetCatalog(ctx context.Context, c *domain.Catalog) error
	GetTierRateRanges(ctx context.Context) ([]domain.TierRateRange, error)
	SetTierRateRanges(ctx context.Context, ranges []domain.TierRateRange) error
	GetAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableCleaner, bool, error)
	SetAvailability(ctx context.Context, q domain.AvailabilityQuery, cleaners []domain.AvailableCleaner) error
	InvalidateAvailability(ctx context.Context, date string) error
	GetBadgeCounts(ctx context.Context, userID string) (map[domain.BookingStatus]int, error)
	SetBadgeCounts(ctx context.Context, userID string, counts map[domain.BookingStatus]int) error
	InvalidateBadgeCounts(ctx context.Context, userIDs ...string) error
}

// DraftStoreInterface defines the persistence of wizard drafts.
type DraftStoreInterface interface {
	Save(ctx context.Context, d *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
	_ DraftStoreInterface    = (*DraftStore)(nil)
)
