package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const cleanerLocationKey = "cleaners:locations"

// CleanerLocation is the base position a cleaner travels from.
type CleanerLocation struct {
	CleanerID string
	Lat       float64
	Lng       float64
}

// LocationStore keeps cleaner base locations in a Redis geo index.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// UpdateLocation stores a cleaner's base location using GEOADD.
func (s *LocationStore) UpdateLocation(ctx context.Context, cleanerID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, cleanerLocationKey, &redis.GeoLocation{
		Name:      cleanerID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// GetLocation returns the base location of a cleaner, or nil if unknown.
func (s *LocationStore) GetLocation(ctx context.Context, cleanerID string) (*CleanerLocation, error) {
	positions, err := s.client.GeoPos(ctx, cleanerLocationKey, cleanerID).Result()
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return nil, nil
	}
	return &CleanerLocation{
		CleanerID: cleanerID,
		Lat:       positions[0].Latitude,
		Lng:       positions[0].Longitude,
	}, nil
}

// RemoveLocation removes a cleaner from the geo index.
func (s *LocationStore) RemoveLocation(ctx context.Context, cleanerID string) error {
	return s.client.ZRem(ctx, cleanerLocationKey, cleanerID).Err()
}
