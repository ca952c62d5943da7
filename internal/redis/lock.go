package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireBookingLock serialises lifecycle transitions of one booking.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	return s.acquire(ctx, fmt.Sprintf("lock:booking:%s", bookingID), ttl)
}

// ReleaseBookingLock releases the lock for the given booking.
func (s *LockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:booking:%s", bookingID)).Err()
}

// AcquireCleanerDayLock serialises booking creation for one cleaner on one date.
func (s *LockStore) AcquireCleanerDayLock(ctx context.Context, cleanerID, date string, ttl time.Duration) (bool, error) {
	return s.acquire(ctx, fmt.Sprintf("lock:cleaner:%s:%s", cleanerID, date), ttl)
}

// ReleaseCleanerDayLock releases the cleaner/date lock.
func (s *LockStore) ReleaseCleanerDayLock(ctx context.Context, cleanerID, date string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:cleaner:%s:%s", cleanerID, date)).Err()
}

func (s *LockStore) acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}
