package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/service"
)

// ──────────────────────────────────────────────
// 1. BOOKING CREATION
// ──────────────────────────────────────────────

// TestCreateBooking_PricesFromCleanerRate verifies the booking stores the
// cleaner's rate and a consistent breakdown.
func TestCreateBooking_PricesFromCleanerRate(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	b, err := env.Booking.CreateBooking(ctx, customerSession, bookingInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Status != domain.BookingStatusPending {
		t.Errorf("expected PENDING, got %s", b.Status)
	}
	if b.CleanerID != "cleaner-1" || b.CleanerProfileID != "profile-1" {
		t.Errorf("unexpected cleaner %s/%s", b.CleanerID, b.CleanerProfileID)
	}
	if b.CleanerHourlyRate != 8500 {
		t.Errorf("expected rate snapshot 8500, got %d", b.CleanerHourlyRate)
	}
	if b.CleanerTier != domain.CleanerTierStandard {
		t.Errorf("expected tier snapshot STANDARD, got %s", b.CleanerTier)
	}
	if b.Duration != 3.5 {
		t.Errorf("expected 3.5 hours, got %v", b.Duration)
	}

	checks := []struct {
		name string
		got  int64
		want int64
	}{
		{"service price", b.ServicePrice, 25500},
		{"add-ons price", b.AddOnsPrice, 5000},
		{"travel fee", b.TravelFee, 0},
		{"platform fee", b.PlatformFee, 4575},
		{"total price", b.TotalPrice, 35075},
		{"cleaner payout", b.CleanerPayout, 30500},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}
	if b.TotalPrice != b.Subtotal()+b.PlatformFee {
		t.Errorf("total %d != subtotal %d + fee %d", b.TotalPrice, b.Subtotal(), b.PlatformFee)
	}

	stored := env.Bookings.GetBooking(b.ID)
	if stored == nil {
		t.Fatal("booking not persisted")
	}
	if stored.AddressID != "addr-1" {
		t.Errorf("expected saved address addr-1, got %s", stored.AddressID)
	}
}

// TestCreateBooking_TravelFeeFromBaseLocation verifies the fee charged for a
// cleaner based outside the free radius.
func TestCreateBooking_TravelFeeFromBaseLocation(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	// ~11.1 km north of the address: 7 started km beyond the free 5 km.
	if err := env.Locations.UpdateLocation(ctx, "cleaner-1", 46.8700, 23.5900); err != nil {
		t.Fatalf("seed location: %v", err)
	}

	b, err := env.Booking.CreateBooking(ctx, customerSession, bookingInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.TravelFee != 1400 {
		t.Errorf("expected travel fee 1400, got %d", b.TravelFee)
	}
	if b.PlatformFee != 4785 {
		t.Errorf("expected platform fee 4785, got %d", b.PlatformFee)
	}
	if b.TotalPrice != 36685 {
		t.Errorf("expected total 36685, got %d", b.TotalPrice)
	}
}

// TestCreateBooking_InlineAddress verifies a geocoded address is saved in the
// same transaction as the booking.
func TestCreateBooking_InlineAddress(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	input := bookingInput()
	input.AddressID = ""
	input.Address = &domain.Address{
		Street:     "Strada Horea",
		City:       "Cluj-Napoca",
		County:     "Cluj",
		PostalCode: "400174",
		Country:    "ro",
		Lat:        46.7750,
		Lng:        23.5850,
	}

	b, err := env.Booking.CreateBooking(context.Background(), customerSession, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.Addresses.CountAddresses() != 3 {
		t.Errorf("expected 3 addresses, got %d", env.Addresses.CountAddresses())
	}
	addr, err := env.Addresses.GetByID(context.Background(), b.AddressID)
	if err != nil {
		t.Fatalf("inline address not saved: %v", err)
	}
	if addr.UserID != customerSession.UserID {
		t.Errorf("expected owner %s, got %s", customerSession.UserID, addr.UserID)
	}
	if addr.Country != "RO" {
		t.Errorf("expected upper-cased country, got %s", addr.Country)
	}
}

// TestCreateBooking_Rejections covers the inputs that must not create a booking.
func TestCreateBooking_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *domain.CreateBookingInput)
		wantErr error
	}{
		{
			name:    "unknown service",
			mutate:  func(in *domain.CreateBookingInput) { in.ServiceID = "window-washing" },
			wantErr: service.ErrUnknownCatalogItem,
		},
		{
			name:    "unknown add-on",
			mutate:  func(in *domain.CreateBookingInput) { in.AddOnIDs = []string{"fridge"} },
			wantErr: service.ErrUnknownCatalogItem,
		},
		{
			name:    "unknown location size",
			mutate:  func(in *domain.CreateBookingInput) { in.LocationSizeID = "castle" },
			wantErr: service.ErrUnknownCatalogItem,
		},
		{
			name:    "missing date",
			mutate:  func(in *domain.CreateBookingInput) { in.Date = "" },
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "malformed time",
			mutate:  func(in *domain.CreateBookingInput) { in.Time = "10am" },
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "unknown frequency",
			mutate:  func(in *domain.CreateBookingInput) { in.Frequency = "DAILY" },
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "schedule in the past",
			mutate:  func(in *domain.CreateBookingInput) { in.Date = "2030-04-30" },
			wantErr: service.ErrScheduleInPast,
		},
		{
			name:    "address of another customer",
			mutate:  func(in *domain.CreateBookingInput) { in.AddressID = "addr-other" },
			wantErr: service.ErrAddressNotOwned,
		},
		{
			name: "address outside the served country",
			mutate: func(in *domain.CreateBookingInput) {
				in.AddressID = ""
				in.Address = &domain.Address{
					Street: "Hauptstrasse", City: "Berlin", County: "Berlin",
					PostalCode: "10115", Country: "DE", Lat: 52.52, Lng: 13.40,
				}
			},
			wantErr: service.ErrAddressCountry,
		},
		{
			name: "saved and inline address together",
			mutate: func(in *domain.CreateBookingInput) {
				in.Address = &domain.Address{
					Street: "Strada Horea", City: "Cluj-Napoca", County: "Cluj",
					PostalCode: "400174", Country: "RO",
				}
			},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "unknown cleaner",
			mutate:  func(in *domain.CreateBookingInput) { in.CleanerID = "nobody" },
			wantErr: service.ErrCleanerUnavailable,
		},
		{
			name:    "cleaner serving another city",
			mutate:  func(in *domain.CreateBookingInput) { in.CleanerID = "cleaner-3" },
			wantErr: service.ErrCleanerUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			input := bookingInput()
			tt.mutate(&input)

			_, err := env.Booking.CreateBooking(context.Background(), customerSession, input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if env.Bookings.CountBookings() != 0 {
				t.Errorf("expected no booking, got %d", env.Bookings.CountBookings())
			}
		})
	}
}

// TestCreateBooking_OnlyCustomers verifies cleaners and admins cannot book.
func TestCreateBooking_OnlyCustomers(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	for _, s := range []struct {
		name string
		role domain.Role
	}{{"cleaner", cleanerSession.Role}, {"admin", adminSession.Role}} {
		session := customerSession
		session.Role = s.role
		_, err := env.Booking.CreateBooking(context.Background(), session, bookingInput())
		if !errors.Is(err, service.ErrRoleNotAllowed) {
			t.Errorf("%s: expected ErrRoleNotAllowed, got %v", s.name, err)
		}
	}
}

// TestCreateBooking_OverlappingJob verifies a cleaner cannot be double-booked.
func TestCreateBooking_OverlappingJob(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	// 12:00-14:00 overlaps the requested 10:00-13:30.
	env.activeBooking("existing", "cleaner-1", "12:00", 2, domain.BookingStatusConfirmed)

	_, err := env.Booking.CreateBooking(context.Background(), customerSession, bookingInput())
	if !errors.Is(err, service.ErrCleanerUnavailable) {
		t.Fatalf("expected ErrCleanerUnavailable, got %v", err)
	}
}

// TestCreateBooking_CancelledJobFreesSlot verifies terminal bookings do not block.
func TestCreateBooking_CancelledJobFreesSlot(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("cancelled", "cleaner-1", "10:00", 3, domain.BookingStatusCancelled)

	if _, err := env.Booking.CreateBooking(context.Background(), customerSession, bookingInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCreateBooking_CleanerDayLocked verifies the per-cleaner day lock.
func TestCreateBooking_CleanerDayLocked(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.Locks.Hold("lock:cleaner:cleaner-1:"+bookingDate, time.Minute)

	_, err := env.Booking.CreateBooking(context.Background(), customerSession, bookingInput())
	if !errors.Is(err, service.ErrBookingBusy) {
		t.Fatalf("expected ErrBookingBusy, got %v", err)
	}
}

// TestCreateBooking_InvalidatesCaches verifies the availability cache of the
// day is dropped after a booking.
func TestCreateBooking_InvalidatesCaches(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	q := domain.AvailabilityQuery{Date: bookingDate, StartTime: bookingTime, Duration: 3, City: "Cluj-Napoca"}
	if _, err := env.Availability.AvailableCleaners(ctx, q); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if env.Cache.CachedAvailability() != 1 {
		t.Fatalf("expected one cached lookup, got %d", env.Cache.CachedAvailability())
	}

	if _, err := env.Booking.CreateBooking(ctx, customerSession, bookingInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.Cache.CachedAvailability() != 0 {
		t.Errorf("expected cached lookups to be invalidated, got %d", env.Cache.CachedAvailability())
	}

	cleaners, err := env.Availability.AvailableCleaners(ctx, q)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	for _, c := range cleaners {
		if c.CleanerID == "cleaner-1" {
			t.Error("booked cleaner still listed as available")
		}
	}
}
