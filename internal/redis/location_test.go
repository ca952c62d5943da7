package redis

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationStore_UpdateAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewLocationStore(db)
	ctx := context.Background()

	mock.ExpectGeoAdd(cleanerLocationKey, &redis.GeoLocation{
		Name:      "c-1",
		Longitude: 23.59,
		Latitude:  46.77,
	}).SetVal(1)
	mock.ExpectGeoPos(cleanerLocationKey, "c-1").SetVal([]*redis.GeoPos{{Longitude: 23.59, Latitude: 46.77}})

	require.NoError(t, store.UpdateLocation(ctx, "c-1", 46.77, 23.59))
	loc, err := store.GetLocation(ctx, "c-1")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 46.77, loc.Lat)
	assert.Equal(t, 23.59, loc.Lng)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationStore_GetLocation_Unknown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewLocationStore(db)

	mock.ExpectGeoPos(cleanerLocationKey, "nobody").SetVal([]*redis.GeoPos{nil})

	loc, err := store.GetLocation(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestLocationStore_RemoveLocation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewLocationStore(db)

	mock.ExpectZRem(cleanerLocationKey, "c-1").SetVal(1)

	require.NoError(t, store.RemoveLocation(context.Background(), "c-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
