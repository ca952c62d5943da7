package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanhome/internal/wizard"
)

func TestDraftStore_SaveAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, 24*time.Hour)
	ctx := context.Background()

	d := &Draft{
		ID:         "d-1",
		CustomerID: "u-1",
		State:      wizard.NewState(),
		UpdatedAt:  time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	d.State.LocationSizeID = "2-bedrooms"
	data, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectSet("wizard:draft:d-1", data, 24*time.Hour).SetVal("OK")
	mock.ExpectGet("wizard:draft:d-1").SetVal(string(data))

	require.NoError(t, store.Save(ctx, d))
	got, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.CustomerID)
	assert.Equal(t, "2-bedrooms", got.State.LocationSizeID)
	assert.Equal(t, wizard.StepLocation, got.State.Step)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftStore_Get_NotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectGet("wizard:draft:missing").RedisNil()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStore_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectDel("wizard:draft:d-1").SetVal(1)

	require.NoError(t, store.Delete(context.Background(), "d-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
