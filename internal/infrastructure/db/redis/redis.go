// Package redis backs the optional Idempotency-Key store. Loans themselves
// never leave process memory.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config captures the settings for the optional Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether an address was configured.
func (c Config) Enabled() bool { return c.Addr != "" }

// Connect opens a client and pings it once. It returns a nil client and nil
// error when Redis is not configured.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
