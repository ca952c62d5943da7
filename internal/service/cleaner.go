package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
)

// CleanerService manages cleaner profiles and tier rate bounds.
type CleanerService struct {
	cleanerRepo   repository.CleanerRepository
	locationStore redis.LocationStoreInterface
	cacheStore    redis.CacheStoreInterface
}

// NewCleanerService creates a new CleanerService. cacheStore may be nil.
func NewCleanerService(
	cleanerRepo repository.CleanerRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore redis.CacheStoreInterface,
) *CleanerService {
	return &CleanerService{
		cleanerRepo:   cleanerRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
	}
}

// TierRateRanges returns the allowed hourly rate range of every tier.
func (s *CleanerService) TierRateRanges(ctx context.Context) ([]domain.TierRateRange, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetTierRateRanges(ctx)
		if err != nil {
			log.Printf("cleaner: tier range cache read failed: %v", err)
		}
		if len(cached) > 0 {
			return cached, nil
		}
	}

	ranges, err := s.cleanerRepo.TierRateRanges(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.SetTierRateRanges(ctx, ranges); err != nil {
			log.Printf("cleaner: tier range cache write failed: %v", err)
		}
	}
	return ranges, nil
}

// RangeFor returns the rate range of tier.
func (s *CleanerService) RangeFor(ctx context.Context, tier domain.CleanerTier) (domain.TierRateRange, error) {
	ranges, err := s.TierRateRanges(ctx)
	if err != nil {
		return domain.TierRateRange{}, err
	}
	for _, r := range ranges {
		if r.Tier == tier {
			return r, nil
		}
	}
	return domain.TierRateRange{}, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
}

// SetupProfileInput is the cleaner onboarding form. HourlyRate is entered in
// whole currency units, e.g. "65.5". The tier is not part of the form: it is
// assigned by the platform.
type SetupProfileInput struct {
	DisplayName string  `json:"display_name" validate:"required,max=100"`
	Bio         string  `json:"bio" validate:"max=2000"`
	HourlyRate  string  `json:"hourly_rate" validate:"required"`
	City        string  `json:"city" validate:"required"`
	PostalCode  string  `json:"postal_code" validate:"max=20"`
	BaseLat     float64 `json:"base_lat" validate:"latitude"`
	BaseLng     float64 `json:"base_lng" validate:"longitude"`
}

// SetupProfile creates or updates the caller's cleaner profile. New profiles
// start in the NEW tier; existing profiles keep their stored tier. The hourly
// rate must lie within the range of that tier.
func (s *CleanerService) SetupProfile(ctx context.Context, session auth.Session, input SetupProfileInput) (*domain.CleanerProfile, error) {
	if session.Role != domain.RoleCleaner {
		return nil, ErrRoleNotAllowed
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	rate, err := pricing.ParseAmount(input.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("%w: hourly_rate: %v", ErrInvalidInput, err)
	}

	profile := &domain.CleanerProfile{
		ID:     uuid.New().String(),
		UserID: session.UserID,
		Tier:   domain.CleanerTierNew,
		Active: true,
	}
	existing, err := s.cleanerRepo.GetByUserID(ctx, session.UserID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.Tier = existing.Tier
		profile.Active = existing.Active
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	bounds, err := s.RangeFor(ctx, profile.Tier)
	if err != nil {
		return nil, err
	}
	if !bounds.Contains(rate) {
		return nil, fmt.Errorf("%w: %s allows %s-%s, got %s", ErrRateOutOfRange, profile.Tier,
			pricing.FormatAmount(bounds.MinRate), pricing.FormatAmount(bounds.MaxRate), pricing.FormatAmount(rate))
	}

	profile.DisplayName = strings.TrimSpace(input.DisplayName)
	profile.Bio = input.Bio
	profile.HourlyRate = rate
	profile.City = strings.TrimSpace(input.City)
	profile.PostalCode = strings.TrimSpace(input.PostalCode)
	profile.BaseLat = input.BaseLat
	profile.BaseLng = input.BaseLng
	if err := s.cleanerRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.syncLocation(ctx, profile)

	return profile, nil
}

// GetProfile returns the caller's cleaner profile.
func (s *CleanerService) GetProfile(ctx context.Context, session auth.Session) (*domain.CleanerProfile, error) {
	if session.Role != domain.RoleCleaner {
		return nil, ErrRoleNotAllowed
	}
	return s.cleanerRepo.GetByUserID(ctx, session.UserID)
}

// UpdateLocation moves the caller's base location.
func (s *CleanerService) UpdateLocation(ctx context.Context, session auth.Session, lat, lng float64) error {
	if session.Role != domain.RoleCleaner {
		return ErrRoleNotAllowed
	}
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return ErrInvalidLocation
	}

	if err := s.cleanerRepo.UpdateBaseLocation(ctx, session.UserID, lat, lng); err != nil {
		return err
	}

	profile, err := s.cleanerRepo.GetByUserID(ctx, session.UserID)
	if err != nil {
		return err
	}
	s.syncLocation(ctx, profile)
	return nil
}

// syncLocation mirrors the base location of an active profile into the geo
// index and drops inactive profiles from it. Failures are logged only.
func (s *CleanerService) syncLocation(ctx context.Context, p *domain.CleanerProfile) {
	if s.locationStore == nil {
		return
	}
	if !p.Active {
		if err := s.locationStore.RemoveLocation(ctx, p.UserID); err != nil {
			log.Printf("cleaner: geo remove failed cleaner_id=%s err=%v", p.UserID, err)
		}
		return
	}
	if p.BaseLat == 0 && p.BaseLng == 0 {
		return
	}
	if err := s.locationStore.UpdateLocation(ctx, p.UserID, p.BaseLat, p.BaseLng); err != nil {
		log.Printf("cleaner: geo update failed cleaner_id=%s err=%v", p.UserID, err)
	}
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
