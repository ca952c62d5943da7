package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/pricing"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
)

// BookingConfig holds the tunables of the booking service.
type BookingConfig struct {
	Country string        // ISO code inline addresses must belong to
	LockTTL time.Duration // lifetime of cleaner/date and booking locks
}

// BookingDeps are the collaborators of BookingService. CacheStore, LockStore
// and Notifications may be nil.
type BookingDeps struct {
	Transactor    repository.Transactor
	Bookings      repository.BookingRepository
	Addresses     repository.AddressRepository
	Cleaners      repository.CleanerRepository
	Catalog       *CatalogService
	Availability  *AvailabilityService
	Travel        *TravelService
	Payments      *PaymentService
	Receipts      *ReceiptService
	Notifications *NotificationService
	LockStore     redis.LockStoreInterface
	CacheStore    redis.CacheStoreInterface
}

// BookingService creates and reads bookings.
type BookingService struct {
	deps BookingDeps
	cfg  BookingConfig
	now  func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(deps BookingDeps, cfg BookingConfig) *BookingService {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Second
	}
	cfg.Country = strings.ToUpper(cfg.Country)
	return &BookingService{deps: deps, cfg: cfg, now: time.Now}
}

// SetClock overrides time.Now.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateBooking prices and persists a PENDING booking for the calling customer.
func (s *BookingService) CreateBooking(ctx context.Context, session auth.Session, input domain.CreateBookingInput) (*domain.Booking, error) {
	if session.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	frequency, ok := domain.ParseFrequency(string(input.Frequency))
	if !ok {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, input.Frequency)
	}

	catalog, err := s.deps.Catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.LocationSize(input.LocationSizeID); !ok {
		return nil, fmt.Errorf("%w: location size %s", ErrUnknownCatalogItem, input.LocationSizeID)
	}
	svc, ok := catalog.Service(input.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: service %s", ErrUnknownCatalogItem, input.ServiceID)
	}
	addOns, unknown := catalog.ResolveAddOns(input.AddOnIDs)
	if unknown != "" {
		return nil, fmt.Errorf("%w: add-on %s", ErrUnknownCatalogItem, unknown)
	}

	date, err := time.Parse(domain.DateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date", ErrInvalidInput)
	}
	booking := &domain.Booking{
		ID:             uuid.New().String(),
		CustomerID:     session.UserID,
		LocationSizeID: input.LocationSizeID,
		ServiceID:      svc.ID,
		ServiceType:    svc.Type,
		Frequency:      frequency,
		AddOnIDs:       addOnIDs(addOns),
		ScheduledDate:  date,
		ScheduledTime:  input.Time,
		Duration:       domain.TotalHours(svc, addOns),
		Status:         domain.BookingStatusPending,
		CustomerNotes:  strings.TrimSpace(input.CustomerNotes),
	}
	if !booking.StartsAt().After(s.now()) {
		return nil, ErrScheduleInPast
	}

	address, inline, err := s.resolveAddress(ctx, session, input)
	if err != nil {
		return nil, err
	}

	cleaner, err := s.deps.Cleaners.GetByUserID(ctx, input.CleanerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown cleaner", ErrCleanerUnavailable)
		}
		return nil, err
	}

	if s.deps.LockStore != nil {
		locked, err := s.deps.LockStore.AcquireCleanerDayLock(ctx, cleaner.UserID, input.Date, s.cfg.LockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrBookingBusy
		}
		defer s.deps.LockStore.ReleaseCleanerDayLock(ctx, cleaner.UserID, input.Date)
	}

	err = s.deps.Availability.CheckAvailable(ctx, cleaner, domain.AvailabilityQuery{
		Date:       input.Date,
		StartTime:  input.Time,
		Duration:   booking.Duration,
		City:       address.City,
		PostalCode: address.PostalCode,
	})
	if err != nil {
		return nil, err
	}

	booking.CleanerID = cleaner.UserID
	booking.CleanerProfileID = cleaner.ID
	booking.CleanerTier = cleaner.Tier
	booking.CleanerRating = cleaner.Rating
	booking.CleanerHourlyRate = cleaner.HourlyRate

	breakdown := pricing.Compute(
		pricing.ServicePrice(svc.BaseHours, cleaner.HourlyRate),
		pricing.AddOnsPrice(addOns),
		s.deps.Travel.Fee(ctx, cleaner, address),
	)
	if err := breakdown.Verify(); err != nil {
		return nil, err
	}
	breakdown.Apply(booking)

	now := s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err = s.deps.Transactor.WithinTx(ctx, func(repos repository.TxRepositories) error {
		if inline {
			if err := repos.Addresses.Create(ctx, address); err != nil {
				return fmt.Errorf("save address: %w", err)
			}
		}
		booking.AddressID = address.ID
		return repos.Bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("booking: created id=%s customer_id=%s cleaner_id=%s date=%s time=%s total=%d",
		booking.ID, booking.CustomerID, booking.CleanerID, input.Date, input.Time, booking.TotalPrice)

	s.invalidate(ctx, booking)
	if s.deps.Notifications != nil {
		_ = s.deps.Notifications.NotifyBookingCreated(ctx, booking)
	}
	metrics.RecordBookingCreated(string(booking.ServiceType), booking.TotalPrice)

	return booking, nil
}

// resolveAddress returns the booking address and whether it is a new inline
// address that still has to be persisted.
func (s *BookingService) resolveAddress(ctx context.Context, session auth.Session, input domain.CreateBookingInput) (*domain.Address, bool, error) {
	if input.AddressID != "" {
		addr, err := s.deps.Addresses.GetByID(ctx, input.AddressID)
		if err != nil {
			return nil, false, err
		}
		if addr.UserID != session.UserID {
			return nil, false, ErrAddressNotOwned
		}
		return addr, false, nil
	}

	addr := *input.Address
	if s.cfg.Country != "" && !strings.EqualFold(addr.Country, s.cfg.Country) {
		return nil, false, fmt.Errorf("%w: %s", ErrAddressCountry, addr.Country)
	}
	addr.ID = uuid.New().String()
	addr.UserID = session.UserID
	addr.Country = strings.ToUpper(addr.Country)
	addr.IsDefault = false
	return &addr, true, nil
}

// invalidate drops cached views a booking change affects.
func (s *BookingService) invalidate(ctx context.Context, b *domain.Booking) {
	invalidateBookingCaches(ctx, s.deps.CacheStore, b)
}

func invalidateBookingCaches(ctx context.Context, cache redis.CacheStoreInterface, b *domain.Booking) {
	if cache == nil {
		return
	}
	// Slots of the previous day may run into this job, and the job may run
	// into the following day.
	for _, day := range occupiedDays(b.StartsAt().AddDate(0, 0, -1), b.EndsAt()) {
		if err := cache.InvalidateAvailability(ctx, day.Format(domain.DateLayout)); err != nil {
			log.Printf("booking: availability invalidation failed id=%s date=%s err=%v", b.ID, day.Format(domain.DateLayout), err)
		}
	}
	if err := cache.InvalidateBadgeCounts(ctx, b.CustomerID, b.CleanerID); err != nil {
		log.Printf("booking: badge invalidation failed id=%s err=%v", b.ID, err)
	}
}

func addOnIDs(addOns []domain.AddOn) []string {
	ids := make([]string, 0, len(addOns))
	for _, a := range addOns {
		ids = append(ids, a.ID)
	}
	return ids
}

// partyRole returns the role the caller plays in b.
func partyRole(b *domain.Booking, session auth.Session) (domain.Role, error) {
	switch {
	case session.UserID == b.CustomerID:
		return domain.RoleCustomer, nil
	case session.UserID == b.CleanerID:
		return domain.RoleCleaner, nil
	case session.Role == domain.RoleAdmin:
		return domain.RoleAdmin, nil
	}
	return "", ErrNotBookingParty
}

// BookingView is a booking as seen by one of its parties.
type BookingView struct {
	Booking   *domain.Booking
	Breakdown pricing.Breakdown
	Subtotal  int64
	Actions   domain.Affordances
}

// GetBooking returns a booking with the actions the caller may perform.
func (s *BookingService) GetBooking(ctx context.Context, session auth.Session, id string) (*BookingView, error) {
	b, role, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.FromBooking(b)
	return &BookingView{
		Booking:   b,
		Breakdown: breakdown,
		Subtotal:  breakdown.Subtotal(),
		Actions:   domain.Allowed(b.Status, role),
	}, nil
}

func (s *BookingService) load(ctx context.Context, session auth.Session, id string) (*domain.Booking, domain.Role, error) {
	if id == "" {
		return nil, "", ErrInvalidBookingID
	}
	b, err := s.deps.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	role, err := partyRole(b, session)
	if err != nil {
		return nil, "", err
	}
	return b, role, nil
}

// BookingList splits the caller's bookings into upcoming and past.
type BookingList struct {
	Upcoming []*domain.Booking
	Past     []*domain.Booking
}

// ListBookings returns the bookings of a customer or the jobs of a cleaner.
func (s *BookingService) ListBookings(ctx context.Context, session auth.Session, filter domain.BookingFilter) (*BookingList, error) {
	var (
		bookings []*domain.Booking
		err      error
	)
	switch session.Role {
	case domain.RoleCustomer:
		bookings, err = s.deps.Bookings.ListByCustomer(ctx, session.UserID, filter)
	case domain.RoleCleaner:
		bookings, err = s.deps.Bookings.ListByCleaner(ctx, session.UserID, filter)
	default:
		return nil, ErrRoleNotAllowed
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	list := &BookingList{
		Upcoming: []*domain.Booking{},
		Past:     []*domain.Booking{},
	}
	for _, b := range bookings {
		if b.IsUpcoming(now) {
			list.Upcoming = append(list.Upcoming, b)
		} else {
			list.Past = append(list.Past, b)
		}
	}

	sort.SliceStable(list.Upcoming, func(i, j int) bool {
		return list.Upcoming[i].StartsAt().Before(list.Upcoming[j].StartsAt())
	})
	sort.SliceStable(list.Past, func(i, j int) bool {
		return list.Past[i].StartsAt().After(list.Past[j].StartsAt())
	})

	return list, nil
}

// BadgeCounts returns the caller's booking counts per status.
func (s *BookingService) BadgeCounts(ctx context.Context, session auth.Session) (map[domain.BookingStatus]int, error) {
	if session.Role != domain.RoleCustomer && session.Role != domain.RoleCleaner {
		return nil, ErrRoleNotAllowed
	}

	if s.deps.CacheStore != nil {
		cached, err := s.deps.CacheStore.GetBadgeCounts(ctx, session.UserID)
		if err != nil {
			log.Printf("booking: badge cache read failed user_id=%s err=%v", session.UserID, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	counts, err := s.deps.Bookings.CountByStatus(ctx, session.UserID, session.Role)
	if err != nil {
		return nil, err
	}

	if s.deps.CacheStore != nil {
		if err := s.deps.CacheStore.SetBadgeCounts(ctx, session.UserID, counts); err != nil {
			log.Printf("booking: badge cache write failed user_id=%s err=%v", session.UserID, err)
		}
	}
	return counts, nil
}

// Receipt returns the priced statement of a booking.
func (s *BookingService) Receipt(ctx context.Context, session auth.Session, id string) (*domain.Receipt, error) {
	b, _, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return s.receipt(ctx, b)
}

func (s *BookingService) receipt(ctx context.Context, b *domain.Booking) (*domain.Receipt, error) {
	req := GenerateReceiptRequest{Booking: b}

	if catalog, err := s.deps.Catalog.Catalog(ctx); err == nil {
		if svc, ok := catalog.Service(b.ServiceID); ok {
			req.ServiceName = svc.Name
		}
	}
	if addr, err := s.deps.Addresses.GetByID(ctx, b.AddressID); err == nil {
		req.Address = addr.Display()
	}
	if s.deps.Payments != nil {
		payment, err := s.deps.Payments.GetPayment(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		req.Payment = payment
	}

	return s.deps.Receipts.Build(req)
}
