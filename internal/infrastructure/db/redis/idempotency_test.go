package redis

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestIdempotencyStore_KeyFormat(t *testing.T) {
	s := NewIdempotencyStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), time.Minute)
	if got := s.key(7, "abc-123"); got != "idem:loan:7:abc-123" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestIdempotencyStore_DefaultTTL(t *testing.T) {
	s := NewIdempotencyStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0)
	if s.ttl != defaultIdempotencyTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultIdempotencyTTL, s.ttl)
	}
}

func TestConnect_DisabledReturnsNilClient(t *testing.T) {
	client, err := Connect(t.Context(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when no address is configured")
	}
}
