package tests

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(b *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bookings[b.ID]; exists {
		return repository.ErrDuplicate
	}
	copy := *b
	m.bookings[b.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *b
	return &copy, nil
}

func (m *MockBookingRepository) list(match func(*domain.Booking) bool, filter domain.BookingFilter) []*domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if !match(b) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copy := *b
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt().After(result[j].StartsAt())
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*domain.Booking{}
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return b.CustomerID == customerID }, filter), nil
}

func (m *MockBookingRepository) ListByCleaner(ctx context.Context, cleanerID string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return b.CleanerID == cleanerID }, filter), nil
}

func (m *MockBookingRepository) ListActiveOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	day := date.Format(domain.DateLayout)
	return m.list(func(b *domain.Booking) bool {
		return b.Status.IsActive() && b.ScheduledDate.Format(domain.DateLayout) == day
	}, domain.BookingFilter{}), nil
}

// UpdateStatus mirrors the compare-and-set of the Postgres repository.
func (m *MockBookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != expected {
		return fmt.Errorf("%w: expected %s, found %s", repository.ErrStatusConflict, expected, stored.Status)
	}
	copy := *b
	m.bookings[b.ID] = &copy
	return nil
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, userID string, role domain.Role) (map[domain.BookingStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[domain.BookingStatus]int)
	for _, b := range m.bookings {
		if (role == domain.RoleCustomer && b.CustomerID == userID) || (role == domain.RoleCleaner && b.CleanerID == userID) {
			counts[b.Status]++
		}
	}
	return counts, nil
}

// GetBooking returns the stored booking (for test assertions).
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// ──────────────────────────────────────────────
// MOCK ADDRESS REPOSITORY
// ──────────────────────────────────────────────

// MockAddressRepository is a mock implementation of AddressRepository.
type MockAddressRepository struct {
	mu        sync.RWMutex
	addresses map[string]*domain.Address

	CreateCallCount int32
}

// NewMockAddressRepository creates a new mock address repository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]*domain.Address),
	}
}

// AddAddress adds an address to the mock repository.
func (m *MockAddressRepository) AddAddress(a *domain.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addresses[a.ID] = a
}

func (m *MockAddressRepository) Create(ctx context.Context, a *domain.Address) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.IsDefault {
		for _, other := range m.addresses {
			if other.UserID == a.UserID {
				other.IsDefault = false
			}
		}
	}
	copy := *a
	m.addresses[a.ID] = &copy
	return nil
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.addresses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (m *MockAddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Address, 0)
	for _, a := range m.addresses {
		if a.UserID == userID {
			copy := *a
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CountAddresses returns the number of addresses.
func (m *MockAddressRepository) CountAddresses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.addresses)
}

// ──────────────────────────────────────────────
// MOCK CLEANER REPOSITORY
// ──────────────────────────────────────────────

// MockCleanerRepository is a mock implementation of CleanerRepository.
type MockCleanerRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.CleanerProfile // keyed by user ID
	ranges   []domain.TierRateRange

	TierRateRangesCallCount int32
}

// NewMockCleanerRepository creates a mock seeded with the default tier ranges.
func NewMockCleanerRepository() *MockCleanerRepository {
	return &MockCleanerRepository{
		profiles: make(map[string]*domain.CleanerProfile),
		ranges: []domain.TierRateRange{
			{Tier: domain.CleanerTierNew, MinRate: 4000, MaxRate: 7000},
			{Tier: domain.CleanerTierStandard, MinRate: 5500, MaxRate: 9500},
			{Tier: domain.CleanerTierPremium, MinRate: 8000, MaxRate: 15000},
		},
	}
}

// AddProfile adds a cleaner profile to the mock repository.
func (m *MockCleanerRepository) AddProfile(p *domain.CleanerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *MockCleanerRepository) Save(ctx context.Context, p *domain.CleanerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.Tier = existing.Tier
		p.Rating = existing.Rating
		p.ReviewCount = existing.ReviewCount
	}
	copy := *p
	m.profiles[p.UserID] = &copy
	return nil
}

func (m *MockCleanerRepository) GetByUserID(ctx context.Context, userID string) (*domain.CleanerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (m *MockCleanerRepository) ListActiveInArea(ctx context.Context, city, postalCode string) ([]*domain.CleanerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.CleanerProfile, 0)
	for _, p := range m.profiles {
		if !p.Active || !strings.EqualFold(p.City, city) {
			continue
		}
		if postalCode != "" && !strings.HasPrefix(postalCode, p.PostalCode) {
			continue
		}
		copy := *p
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *MockCleanerRepository) UpdateBaseLocation(ctx context.Context, userID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.BaseLat = lat
	p.BaseLng = lng
	return nil
}

func (m *MockCleanerRepository) TierRateRanges(ctx context.Context) ([]domain.TierRateRange, error) {
	atomic.AddInt32(&m.TierRateRangesCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.TierRateRange{}, m.ranges...), nil
}

// GetProfile returns the stored profile (for test assertions).
func (m *MockCleanerRepository) GetProfile(userID string) *domain.CleanerProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[userID]
}

// ──────────────────────────────────────────────
// MOCK CATALOG / USER REPOSITORIES
// ──────────────────────────────────────────────

// MockCatalogRepository serves a fixed catalog.
type MockCatalogRepository struct {
	Catalog *domain.Catalog

	GetCallCount int32
}

func (m *MockCatalogRepository) Get(ctx context.Context) (*domain.Catalog, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	return m.Catalog, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	copy := *u
	m.users[u.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.IdempotencyKey == key {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil // Not found, but not an error for idempotency check
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

// CountPayments returns the number of payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// MOCK TRANSACTOR
// ──────────────────────────────────────────────

// MockTransactor runs the callback against the in-memory repositories.
type MockTransactor struct {
	Bookings  *MockBookingRepository
	Addresses *MockAddressRepository

	CallCount int32
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	atomic.AddInt32(&m.CallCount, 1)
	return fn(repository.TxRepositories{Bookings: m.Bookings, Addresses: m.Addresses})
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStore.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]redis.CleanerLocation

	UpdateLocationCallCount int32
	UpdateLocationError     error
	RemoveLocationCallCount int32
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{locations: make(map[string]redis.CleanerLocation)}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, cleanerID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[cleanerID] = redis.CleanerLocation{CleanerID: cleanerID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) GetLocation(ctx context.Context, cleanerID string) (*redis.CleanerLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[cleanerID]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, cleanerID string) error {
	atomic.AddInt32(&m.RemoveLocationCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, cleanerID)
	return nil
}

// HasLocation checks if a cleaner location exists.
func (m *MockLocationStore) HasLocation(cleanerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.locations[cleanerID]
	return ok
}

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	AcquireCallCount int32
	ReleaseCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]time.Time)}
}

func (m *MockLockStore) acquire(key string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()

	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:booking:"+bookingID, ttl)
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	return m.release("lock:booking:" + bookingID)
}

func (m *MockLockStore) AcquireCleanerDayLock(ctx context.Context, cleanerID, date string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:cleaner:"+cleanerID+":"+date, ttl)
}

func (m *MockLockStore) ReleaseCleanerDayLock(ctx context.Context, cleanerID, date string) error {
	return m.release("lock:cleaner:" + cleanerID + ":" + date)
}

// Hold takes a lock key for the given duration (for test setup).
func (m *MockLockStore) Hold(key string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[key] = time.Now().Add(ttl)
}

// MockCacheStore is an in-memory CacheStoreInterface.
type MockCacheStore struct {
	mu           sync.Mutex
	catalog      *domain.Catalog
	ranges       []domain.TierRateRange
	availability map[string][]domain.AvailableCleaner
	badges       map[string]map[domain.BookingStatus]int

	InvalidatedDates []string
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		availability: make(map[string][]domain.AvailableCleaner),
		badges:       make(map[string]map[domain.BookingStatus]int),
	}
}

func availabilityKey(q domain.AvailabilityQuery) string {
	return fmt.Sprintf("%s|%s|%g|%s|%s", q.Date, q.StartTime, q.Duration, strings.ToLower(q.City), q.PostalCode)
}

func (m *MockCacheStore) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog, nil
}

func (m *MockCacheStore) SetCatalog(ctx context.Context, c *domain.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
	return nil
}

func (m *MockCacheStore) GetTierRateRanges(ctx context.Context) ([]domain.TierRateRange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ranges, nil
}

func (m *MockCacheStore) SetTierRateRanges(ctx context.Context, ranges []domain.TierRateRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges = ranges
	return nil
}

func (m *MockCacheStore) GetAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableCleaner, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cleaners, ok := m.availability[availabilityKey(q)]
	return cleaners, ok, nil
}

func (m *MockCacheStore) SetAvailability(ctx context.Context, q domain.AvailabilityQuery, cleaners []domain.AvailableCleaner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.availability[availabilityKey(q)] = cleaners
	return nil
}

func (m *MockCacheStore) InvalidateAvailability(ctx context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.availability {
		if strings.HasPrefix(key, date+"|") {
			delete(m.availability, key)
		}
	}
	m.InvalidatedDates = append(m.InvalidatedDates, date)
	return nil
}

func (m *MockCacheStore) GetBadgeCounts(ctx context.Context, userID string) (map[domain.BookingStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.badges[userID], nil
}

func (m *MockCacheStore) SetBadgeCounts(ctx context.Context, userID string, counts map[domain.BookingStatus]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badges[userID] = counts
	return nil
}

func (m *MockCacheStore) InvalidateBadgeCounts(ctx context.Context, userIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range userIDs {
		delete(m.badges, id)
	}
	return nil
}

// CachedAvailability returns the number of cached availability entries.
func (m *MockCacheStore) CachedAvailability() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.availability)
}

// MockDraftStore is an in-memory DraftStoreInterface.
type MockDraftStore struct {
	mu     sync.Mutex
	drafts map[string]redis.Draft
}

// NewMockDraftStore creates a new mock draft store.
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{drafts: make(map[string]redis.Draft)}
}

func (m *MockDraftStore) Save(ctx context.Context, d *redis.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.ID] = *d
	return nil
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (*redis.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, redis.ErrDraftNotFound
	}
	return &d, nil
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PSP (Payment Service Provider)
// ──────────────────────────────────────────────

// MockPSP is a mock payment service provider.
type MockPSP struct {
	mu sync.Mutex

	// Control behavior
	ShouldFail bool
	FailError  error

	// Counters
	ChargeCallCount int32
}

// NewMockPSP creates a new mock PSP.
func NewMockPSP() *MockPSP {
	return &MockPSP{}
}

func (m *MockPSP) Charge(ctx context.Context, bookingID string, amount int64) (bool, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailError != nil {
		return false, m.FailError
	}
	if m.ShouldFail {
		return false, nil
	}
	return true, nil
}

// SetFailure configures the PSP to fail.
func (m *MockPSP) SetFailure(shouldFail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = shouldFail
	m.FailError = err
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockPSPDown = errors.New("mock: psp unavailable")
)

// Ensure mocks implement the interfaces.
var (
	_ repository.BookingRepository = (*MockBookingRepository)(nil)
	_ repository.AddressRepository = (*MockAddressRepository)(nil)
	_ repository.CleanerRepository = (*MockCleanerRepository)(nil)
	_ repository.CatalogRepository = (*MockCatalogRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.PaymentRepository = (*MockPaymentRepository)(nil)
	_ repository.Transactor        = (*MockTransactor)(nil)
	_ redis.LocationStoreInterface = (*MockLocationStore)(nil)
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
	_ redis.CacheStoreInterface    = (*MockCacheStore)(nil)
	_ redis.DraftStoreInterface    = (*MockDraftStore)(nil)
)
