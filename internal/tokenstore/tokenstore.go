// Package tokenstore keeps the logout denylist for issued auth tokens.
package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "denylist:token:"

// Denylist records revoked token IDs until their natural expiry.
type Denylist interface {
	Deny(ctx context.Context, tokenID string, ttl time.Duration) error
	IsDenied(ctx context.Context, tokenID string) (bool, error)
}

// Store implements Denylist on Redis. A nil Store denies nothing, which
// keeps development setups without Redis working.
type Store struct {
	client *redis.Client
}

var _ Denylist = (*Store)(nil)

func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Deny marks a token ID as revoked for the given TTL.
func (s *Store) Deny(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsDenied reports whether a token ID has been revoked. Redis errors are
// returned so the caller can decide whether to fail open.
func (s *Store) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	_, err := s.client.Get(ctx, denylistKeyPrefix+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping verifies connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}
