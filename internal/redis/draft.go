package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cleanhome/internal/wizard"
)

const draftPrefix = "wizard:draft:"

// ErrDraftNotFound is returned when a draft is missing or expired.
var ErrDraftNotFound = errors.New("booking draft not found")

// Draft is a server-held booking wizard owned by a customer.
type Draft struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customer_id"`
	State      wizard.State `json:"state"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// DraftStore persists wizard drafts with a sliding TTL.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a new DraftStore.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// Save stores the draft and refreshes its TTL.
func (s *DraftStore) Save(ctx context.Context, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftPrefix+d.ID, data, s.ttl).Err()
}

// Get loads a draft.
func (s *DraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	data, err := s.client.Get(ctx, draftPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a draft.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftPrefix+id).Err()
}
