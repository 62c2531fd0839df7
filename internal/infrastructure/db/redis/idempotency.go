package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps Idempotency-Key headers to created loan IDs.
// Key format: idem:loan:<owner_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// pendingValue marks a key whose create is still running.
const pendingValue = "0"

// Claim reserves key with SetNX. A lost race reads back the winner's value.
func (s *IdempotencyStore) Claim(ctx context.Context, ownerID int64, key string) (int64, bool, error) {
	k := s.key(ownerID, key)
	ok, err := s.client.SetNX(ctx, k, pendingValue, s.ttl).Result()
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return 0, true, nil
	}

	v, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// released or expired between the two calls
		return s.Claim(ctx, ownerID, key)
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: corrupt value %q: %w", v, err)
	}
	return id, false, nil
}

// Remember overwrites the pending marker with loanID.
func (s *IdempotencyStore) Remember(ctx context.Context, ownerID int64, key string, loanID int64) error {
	return s.client.Set(ctx, s.key(ownerID, key), strconv.FormatInt(loanID, 10), s.ttl).Err()
}

// Release deletes the key so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, ownerID int64, key string) error {
	return s.client.Del(ctx, s.key(ownerID, key)).Err()
}

func (s *IdempotencyStore) key(ownerID int64, key string) string {
	return fmt.Sprintf("idem:loan:%d:%s", ownerID, key)
}
