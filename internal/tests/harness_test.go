package tests

import (
	"time"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/service"
	"cleanhome/internal/wizard"
)

// ──────────────────────────────────────────────
// FIXTURE
// ──────────────────────────────────────────────

var fixedNow = time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

const (
	bookingDate = "2030-05-10"
	bookingTime = "10:00"
)

var (
	customerSession      = auth.Session{UserID: "cust-1", Email: "maria@example.com", Role: domain.RoleCustomer}
	otherCustomerSession = auth.Session{UserID: "cust-2", Email: "ion@example.com", Role: domain.RoleCustomer}
	cleanerSession       = auth.Session{UserID: "cleaner-1", Email: "ana@example.com", Role: domain.RoleCleaner}
	otherCleanerSession  = auth.Session{UserID: "cleaner-2", Email: "elena@example.com", Role: domain.RoleCleaner}
	adminSession         = auth.Session{UserID: "admin-1", Email: "ops@example.com", Role: domain.RoleAdmin}
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		LocationSizes: []domain.LocationSize{
			{ID: "studio", Label: "Studio", SortOrder: 1},
			{ID: "1-bedroom", Label: "1 Bedroom", SortOrder: 2},
			{ID: "2-bedrooms", Label: "2 Bedrooms", IsDefault: true, SortOrder: 3},
		},
		Services: []domain.Service{
			{ID: "general-cleaning", Type: domain.ServiceTypeGeneral, Name: "General Cleaning", BaseHours: 3},
			{ID: "deep-cleaning", Type: domain.ServiceTypeDeep, Name: "Deep Cleaning", BaseHours: 5},
		},
		AddOns: []domain.AddOn{
			{ID: "oven", Name: "Inside the oven", Hours: 0.5, Price: 5000},
			{ID: "windows", Name: "Windows", Hours: 1, Price: 8000},
		},
	}
}

// testEnv wires the services on top of the in-memory mocks.
type testEnv struct {
	Bookings  *MockBookingRepository
	Addresses *MockAddressRepository
	Cleaners  *MockCleanerRepository
	Payments  *MockPaymentRepository
	Locations *MockLocationStore
	Locks     *MockLockStore
	Cache     *MockCacheStore
	Drafts    *MockDraftStore
	PSP       *MockPSP

	Catalog      *service.CatalogService
	Availability *service.AvailabilityService
	Cleaner      *service.CleanerService
	Booking      *service.BookingService
	Lifecycle    *service.LifecycleService
	Wizard       *service.WizardService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		Bookings:  NewMockBookingRepository(),
		Addresses: NewMockAddressRepository(),
		Cleaners:  NewMockCleanerRepository(),
		Payments:  NewMockPaymentRepository(),
		Locations: NewMockLocationStore(),
		Locks:     NewMockLockStore(),
		Cache:     NewMockCacheStore(),
		Drafts:    NewMockDraftStore(),
		PSP:       NewMockPSP(),
	}

	notifications := service.NewNotificationService()
	env.Catalog = service.NewCatalogService(&MockCatalogRepository{Catalog: testCatalog()}, env.Cache)
	env.Availability = service.NewAvailabilityService(env.Cleaners, env.Bookings, env.Cache)
	env.Cleaner = service.NewCleanerService(env.Cleaners, env.Locations, env.Cache)

	env.Booking = service.NewBookingService(service.BookingDeps{
		Transactor:    &MockTransactor{Bookings: env.Bookings, Addresses: env.Addresses},
		Bookings:      env.Bookings,
		Addresses:     env.Addresses,
		Cleaners:      env.Cleaners,
		Catalog:       env.Catalog,
		Availability:  env.Availability,
		Travel:        service.NewTravelService(env.Locations, pricing.DefaultTravelPolicy()),
		Payments:      service.NewPaymentService(env.Payments, env.PSP),
		Receipts:      service.NewReceiptService(notifications),
		Notifications: notifications,
		LockStore:     env.Locks,
		CacheStore:    env.Cache,
	}, service.BookingConfig{Country: "RO", LockTTL: 5 * time.Second})
	env.Booking.SetClock(func() time.Time { return fixedNow })

	env.Lifecycle = service.NewLifecycleService(env.Booking)
	env.Lifecycle.SetClock(func() time.Time { return fixedNow })

	env.Wizard = service.NewWizardService(env.Drafts, env.Catalog, env.Addresses, env.Availability, env.Booking,
		wizard.WithCountry("RO"),
		wizard.WithClock(func() time.Time { return fixedNow }),
	)

	env.seed()
	return env
}

func (env *testEnv) seed() {
	env.Addresses.AddAddress(&domain.Address{
		ID:         "addr-1",
		UserID:     customerSession.UserID,
		Street:     "Strada Memorandumului",
		City:       "Cluj-Napoca",
		County:     "Cluj",
		PostalCode: "400114",
		Country:    "RO",
		Lat:        46.7700,
		Lng:        23.5900,
		Formatted:  "Strada Memorandumului 28, Cluj-Napoca",
		IsDefault:  true,
	})
	env.Addresses.AddAddress(&domain.Address{
		ID:         "addr-other",
		UserID:     otherCustomerSession.UserID,
		Street:     "Bulevardul Eroilor",
		City:       "Cluj-Napoca",
		County:     "Cluj",
		PostalCode: "400129",
		Country:    "RO",
		Lat:        46.7705,
		Lng:        23.5920,
	})

	env.Cleaners.AddProfile(&domain.CleanerProfile{
		ID: "profile-1", UserID: "cleaner-1", DisplayName: "Ana",
		Tier: domain.CleanerTierStandard, HourlyRate: 8500, Rating: 4.9, ReviewCount: 120,
		City: "Cluj-Napoca", PostalCode: "400", BaseLat: 46.7700, BaseLng: 23.5900, Active: true,
	})
	env.Cleaners.AddProfile(&domain.CleanerProfile{
		ID: "profile-2", UserID: "cleaner-2", DisplayName: "Elena",
		Tier: domain.CleanerTierNew, HourlyRate: 6000, Rating: 4.5, ReviewCount: 30,
		City: "Cluj-Napoca", Active: true,
	})
	env.Cleaners.AddProfile(&domain.CleanerProfile{
		ID: "profile-3", UserID: "cleaner-3", DisplayName: "Ioana",
		Tier: domain.CleanerTierPremium, HourlyRate: 12000, Rating: 5.0, ReviewCount: 80,
		City: "Bucharest", Active: true,
	})
}

// bookingInput is a valid creation request with Ana at the saved address.
func bookingInput() domain.CreateBookingInput {
	return domain.CreateBookingInput{
		LocationSizeID: "2-bedrooms",
		ServiceID:      "general-cleaning",
		AddOnIDs:       []string{"oven"},
		Date:           bookingDate,
		Time:           bookingTime,
		CleanerID:      "cleaner-1",
		AddressID:      "addr-1",
	}
}

// activeBooking stores a booking of cleaner in the given status.
func (env *testEnv) activeBooking(id, cleanerID, clock string, hours float64, status domain.BookingStatus) *domain.Booking {
	date, _ := time.Parse(domain.DateLayout, bookingDate)
	b := &domain.Booking{
		ID:                id,
		CustomerID:        customerSession.UserID,
		CleanerID:         cleanerID,
		ServiceID:         "general-cleaning",
		ServiceType:       domain.ServiceTypeGeneral,
		ScheduledDate:     date,
		ScheduledTime:     clock,
		Duration:          hours,
		AddressID:         "addr-1",
		CleanerHourlyRate: 8500,
		ServicePrice:      25500,
		PlatformFee:       3825,
		TotalPrice:        29325,
		CleanerPayout:     25500,
		Status:            status,
	}
	env.Bookings.AddBooking(b)
	return b
}

func strPtr(s string) *string {
	return &s
}
