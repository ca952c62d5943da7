package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
)

// AvailabilityService finds cleaners free for a slot.
type AvailabilityService struct {
	cleanerRepo repository.CleanerRepository
	bookingRepo repository.BookingRepository
	cacheStore  redis.CacheStoreInterface
}

// NewAvailabilityService creates a new AvailabilityService. cacheStore may be nil.
func NewAvailabilityService(
	cleanerRepo repository.CleanerRepository,
	bookingRepo repository.BookingRepository,
	cacheStore redis.CacheStoreInterface,
) *AvailabilityService {
	return &AvailabilityService{
		cleanerRepo: cleanerRepo,
		bookingRepo: bookingRepo,
		cacheStore:  cacheStore,
	}
}

// slot is a parsed availability query.
type slot struct {
	start time.Time
	end   time.Time
}

func parseSlot(q domain.AvailabilityQuery) (slot, error) {
	date, err := time.Parse(domain.DateLayout, q.Date)
	if err != nil {
		return slot{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	clock, err := time.Parse(domain.TimeLayout, q.StartTime)
	if err != nil {
		return slot{}, fmt.Errorf("%w: start time must be HH:MM", ErrInvalidInput)
	}
	if q.Duration <= 0 {
		return slot{}, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(q.City) == "" {
		return slot{}, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	return slot{
		start: start,
		end:   start.Add(domain.HoursToDuration(q.Duration)),
	}, nil
}

// AvailableCleaners returns the active cleaners serving the area of q who
// have no overlapping active booking, best rated first.
func (s *AvailabilityService) AvailableCleaners(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableCleaner, error) {
	sl, err := parseSlot(q)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		cached, ok, err := s.cacheStore.GetAvailability(ctx, q)
		if err != nil {
			log.Printf("availability: cache read failed: %v", err)
		}
		if ok {
			metrics.RecordAvailabilityLookup("hit")
			return cached, nil
		}
	}
	metrics.RecordAvailabilityLookup("miss")

	profiles, err := s.cleanerRepo.ListActiveInArea(ctx, q.City, q.PostalCode)
	if err != nil {
		return nil, err
	}

	busy, err := s.busyCleaners(ctx, sl)
	if err != nil {
		return nil, err
	}

	cleaners := make([]domain.AvailableCleaner, 0, len(profiles))
	for _, p := range profiles {
		if busy[p.UserID] {
			continue
		}
		cleaners = append(cleaners, domain.AvailableCleaner{
			CleanerID:   p.UserID,
			ProfileID:   p.ID,
			Name:        p.DisplayName,
			Tier:        p.Tier,
			HourlyRate:  p.HourlyRate,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
		})
	}

	sort.SliceStable(cleaners, func(i, j int) bool {
		if cleaners[i].Rating != cleaners[j].Rating {
			return cleaners[i].Rating > cleaners[j].Rating
		}
		return cleaners[i].ReviewCount > cleaners[j].ReviewCount
	})

	if s.cacheStore != nil {
		if err := s.cacheStore.SetAvailability(ctx, q, cleaners); err != nil {
			log.Printf("availability: cache write failed: %v", err)
		}
	}

	return cleaners, nil
}

// CheckAvailable verifies, bypassing the cache, that cleaner serves the
// address of q and is free for the whole slot.
func (s *AvailabilityService) CheckAvailable(ctx context.Context, cleaner *domain.CleanerProfile, q domain.AvailabilityQuery) error {
	sl, err := parseSlot(q)
	if err != nil {
		return err
	}

	if !cleaner.Active || !servesArea(cleaner, q.City, q.PostalCode) {
		return ErrCleanerUnavailable
	}

	busy, err := s.busyCleaners(ctx, sl)
	if err != nil {
		return err
	}
	if busy[cleaner.UserID] {
		return ErrCleanerUnavailable
	}
	return nil
}

// busyCleaners returns the cleaners with an active booking overlapping sl.
// Jobs are stored under their start date, so the previous day is scanned for
// jobs running past midnight and, for a slot that itself crosses midnight,
// the following days up to the slot end.
func (s *AvailabilityService) busyCleaners(ctx context.Context, sl slot) (map[string]bool, error) {
	busy := make(map[string]bool)
	for _, day := range occupiedDays(sl.start.AddDate(0, 0, -1), sl.end) {
		bookings, err := s.bookingRepo.ListActiveOnDate(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			if !b.Status.IsActive() {
				continue
			}
			if b.StartsAt().Before(sl.end) && sl.start.Before(b.EndsAt()) {
				busy[b.CleanerID] = true
			}
		}
	}
	return busy, nil
}

// occupiedDays lists the calendar dates from the date of from through the
// date of the last instant before to.
func occupiedDays(from, to time.Time) []time.Time {
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	last := to.Add(-time.Nanosecond)
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// servesArea mirrors the repository's area filter: same city and, when a
// postal code is given, a matching postal prefix.
func servesArea(cleaner *domain.CleanerProfile, city, postalCode string) bool {
	if !strings.EqualFold(strings.TrimSpace(cleaner.City), strings.TrimSpace(city)) {
		return false
	}
	return postalCode == "" || strings.HasPrefix(postalCode, cleaner.PostalCode)
}
