package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Delete policies for DELETE /api/loans/{id}.
const (
	DeletePolicyOwner   = "owner"   // applicants on their own loans, managers on any
	DeletePolicyManager = "manager" // managers only
	DeletePolicyOpen    = "open"    // any authenticated caller
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	TokenSecret string `env:"TOKEN_SECRET"`
	TokenFile   string `env:"TOKEN_FILE, default=tokens.txt"`

	DeletePolicy    string        `env:"DELETE_POLICY,    default=owner"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	IdempotencyTTL  time.Duration `env:"IDEMPOTENCY_TTL,  default=24h"`

	Redis RedisConfig
}

// RedisConfig is optional; an empty address keeps idempotency keys in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DeletePolicy {
	case DeletePolicyOwner, DeletePolicyManager, DeletePolicyOpen:
	default:
		return fmt.Errorf("config: DELETE_POLICY must be one of %s, %s, %s; got %q",
			DeletePolicyOwner, DeletePolicyManager, DeletePolicyOpen, c.DeletePolicy)
	}
	if c.Port == "" {
		return fmt.Errorf("config: PORT must not be empty")
	}
	return nil
}

// IsDevelopment enables pretty console logs.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }
