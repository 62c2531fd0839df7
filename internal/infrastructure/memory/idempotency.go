package memory

import (
	"context"
	"sync"
	"time"
)

type idemEntry struct {
	loanID    int64 // 0 while the claiming request is in flight
	expiresAt time.Time
}

type idemKey struct {
	owner int64
	key   string
}

// IdempotencyStore keeps Idempotency-Key mappings in memory. Used when no
// Redis address is configured.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[idemKey]idemEntry
	now     func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{ttl: ttl, entries: make(map[idemKey]idemEntry), now: time.Now}
}

func (s *IdempotencyStore) Claim(_ context.Context, ownerID int64, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idemKey{owner: ownerID, key: key}
	if e, ok := s.entries[k]; ok && !s.expired(e) {
		return e.loanID, false, nil
	}
	s.entries[k] = idemEntry{expiresAt: s.now().Add(s.ttl)}
	return 0, true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, ownerID int64, key string, loanID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[idemKey{owner: ownerID, key: key}] = idemEntry{loanID: loanID, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, ownerID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, idemKey{owner: ownerID, key: key})
	return nil
}

func (s *IdempotencyStore) expired(e idemEntry) bool {
	return s.ttl > 0 && s.now().After(e.expiresAt)
}
