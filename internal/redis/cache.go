package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cleanhome/internal/domain"
)

// CacheTTLs configures how long each cached view lives.
type CacheTTLs struct {
	Availability time.Duration
	Catalog      time.Duration
	BadgeCounts  time.Duration
}

// DefaultCacheTTLs returns the default cache lifetimes.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Availability: 30 * time.Second,
		Catalog:      10 * time.Minute,
		BadgeCounts:  30 * time.Second, // matches the sidebar polling interval
	}
}

// Key prefixes
const (
	catalogCacheKey         = "cache:catalog"
	tierRatesCacheKey       = "cache:tier_rate_ranges"
	availabilityCachePrefix = "cache:availability:"
	availabilityIndexPrefix = "cache:availability_index:"
	badgeCountsCachePrefix  = "cache:badge_counts:"
)

// CacheStore handles read-model caching in Redis.
type CacheStore struct {
	client *redis.Client
	ttls   CacheTTLs
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client, ttls CacheTTLs) *CacheStore {
	return &CacheStore{client: client, ttls: ttls}
}

// getJSON returns false on a cache miss.
func (s *CacheStore) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// GetCatalog returns the cached catalog or nil on a miss.
func (s *CacheStore) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	var c domain.Catalog
	ok, err := s.getJSON(ctx, catalogCacheKey, &c)
	if !ok || err != nil {
		return nil, err
	}
	return &c, nil
}

// SetCatalog stores the catalog.
func (s *CacheStore) SetCatalog(ctx context.Context, c *domain.Catalog) error {
	return s.setJSON(ctx, catalogCacheKey, c, s.ttls.Catalog)
}

// GetTierRateRanges returns the cached tier ranges or nil on a miss.
func (s *CacheStore) GetTierRateRanges(ctx context.Context) ([]domain.TierRateRange, error) {
	var ranges []domain.TierRateRange
	ok, err := s.getJSON(ctx, tierRatesCacheKey, &ranges)
	if !ok || err != nil {
		return nil, err
	}
	return ranges, nil
}

// SetTierRateRanges stores the tier ranges.
func (s *CacheStore) SetTierRateRanges(ctx context.Context, ranges []domain.TierRateRange) error {
	return s.setJSON(ctx, tierRatesCacheKey, ranges, s.ttls.Catalog)
}

func availabilityKey(q domain.AvailabilityQuery) string {
	return availabilityCachePrefix + strings.Join([]string{
		q.Date,
		q.StartTime,
		strconv.FormatFloat(q.Duration, 'f', -1, 64),
		strings.ToLower(q.City),
		q.PostalCode,
	}, ":")
}

// GetAvailability returns the cached candidates for a query. The second
// return value is false on a cache miss.
func (s *CacheStore) GetAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableCleaner, bool, error) {
	var cleaners []domain.AvailableCleaner
	ok, err := s.getJSON(ctx, availabilityKey(q), &cleaners)
	return cleaners, ok, err
}

// SetAvailability stores the candidates of a query and indexes the key
// under its date so it can be invalidated when a booking changes.
func (s *CacheStore) SetAvailability(ctx context.Context, q domain.AvailabilityQuery, cleaners []domain.AvailableCleaner) error {
	if cleaners == nil {
		cleaners = []domain.AvailableCleaner{}
	}
	data, err := json.Marshal(cleaners)
	if err != nil {
		return err
	}

	key := availabilityKey(q)
	indexKey := availabilityIndexPrefix + q.Date

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.ttls.Availability)
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, s.ttls.Availability)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateAvailability drops every cached lookup for a date.
func (s *CacheStore) InvalidateAvailability(ctx context.Context, date string) error {
	indexKey := availabilityIndexPrefix + date
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	return s.client.Del(ctx, append(keys, indexKey)...).Err()
}

// GetBadgeCounts returns the cached per-status counts of a user, or nil on a miss.
func (s *CacheStore) GetBadgeCounts(ctx context.Context, userID string) (map[domain.BookingStatus]int, error) {
	var counts map[domain.BookingStatus]int
	ok, err := s.getJSON(ctx, badgeCountsCachePrefix+userID, &counts)
	if !ok || err != nil {
		return nil, err
	}
	return counts, nil
}

// SetBadgeCounts stores the per-status counts of a user.
func (s *CacheStore) SetBadgeCounts(ctx context.Context, userID string, counts map[domain.BookingStatus]int) error {
	return s.setJSON(ctx, badgeCountsCachePrefix+userID, counts, s.ttls.BadgeCounts)
}

// InvalidateBadgeCounts removes the cached counts of the given users.
func (s *CacheStore) InvalidateBadgeCounts(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, badgeCountsCachePrefix+id)
	}
	return s.client.Del(ctx, keys...).Err()
}
