package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrStoreUnavailable = errors.New("layout store unavailable")
)

// Store persists page layout documents per user and page. The payload
// is opaque JSON; nothing here interprets it.
type Store struct {
	redis *redis.Client
}

// NewStore creates layout store. A nil client disables the feature.
func NewStore(client *redis.Client) *Store {
	return &Store{redis: client}
}

func layoutKey(userID uuid.UUID, page string) string {
	return fmt.Sprintf("layout:%s:%s", userID, page)
}

// Get returns the stored layout document for a user and page
func (s *Store) Get(ctx context.Context, userID uuid.UUID, page string) ([]byte, error) {
	if s.redis == nil {
		return nil, ErrStoreUnavailable
	}

	data, err := s.redis.Get(ctx, layoutKey(userID, page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrLayoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put stores the layout document, replacing any previous one
func (s *Store) Put(ctx context.Context, userID uuid.UUID, page string, doc []byte) error {
	if s.redis == nil {
		return ErrStoreUnavailable
	}
	return s.redis.Set(ctx, layoutKey(userID, page), doc, 0).Err()
}

// Delete removes the stored layout document
func (s *Store) Delete(ctx context.Context, userID uuid.UUID, page string) error {
	if s.redis == nil {
		return ErrStoreUnavailable
	}
	return s.redis.Del(ctx, layoutKey(userID, page)).Err()
}
