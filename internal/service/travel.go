package service

import (
	"context"
	"log"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/redis"
)

// TravelService prices the trip from a cleaner's base to the booking address.
type TravelService struct {
	locationStore redis.LocationStoreInterface
	policy        pricing.TravelPolicy
}

// NewTravelService creates a new TravelService. locationStore may be nil,
// in which case the base stored on the profile is used.
func NewTravelService(locationStore redis.LocationStoreInterface, policy pricing.TravelPolicy) *TravelService {
	return &TravelService{
		locationStore: locationStore,
		policy:        policy,
	}
}

// Policy returns the configured travel policy.
func (s *TravelService) Policy() pricing.TravelPolicy {
	return s.policy
}

// Fee returns the travel fee for cleaner to reach addr. A cleaner without a
// known base or an address without coordinates travels for free.
func (s *TravelService) Fee(ctx context.Context, cleaner *domain.CleanerProfile, addr *domain.Address) int64 {
	if cleaner == nil || addr == nil || (addr.Lat == 0 && addr.Lng == 0) {
		return 0
	}

	lat, lng, ok := s.base(ctx, cleaner)
	if !ok {
		return 0
	}

	distance := pricing.DistanceKm(lat, lng, addr.Lat, addr.Lng)
	return pricing.TravelFee(distance, s.policy)
}

func (s *TravelService) base(ctx context.Context, cleaner *domain.CleanerProfile) (float64, float64, bool) {
	if s.locationStore != nil {
		loc, err := s.locationStore.GetLocation(ctx, cleaner.UserID)
		if err != nil {
			log.Printf("travel: location lookup failed cleaner_id=%s err=%v", cleaner.UserID, err)
		}
		if loc != nil {
			return loc.Lat, loc.Lng, true
		}
	}

	if cleaner.BaseLat == 0 && cleaner.BaseLng == 0 {
		return 0, 0, false
	}
	return cleaner.BaseLat, cleaner.BaseLng, true
}
