package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const DevSessionSecret = "dev-insecure-session-secret"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DB      DBConfig
	Session SessionConfig
	Redis   RedisConfig
}

type DBConfig struct {
	Driver       string `env:"DB_DRIVER,         default=sqlite"`
	DSN          string `env:"DB_DSN,            default=memos.db"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

type SessionConfig struct {
	Backend    string        `env:"SESSION_BACKEND, default=cookie"`
	Secret     string        `env:"SESSION_SECRET,  default=dev-insecure-session-secret"`
	CookieName string        `env:"SESSION_COOKIE,  default=session"`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE, default=336h"`
	Secure     bool          `env:"SESSION_SECURE,  default=false"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Production reports whether the service runs with ENV=production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.DB.Driver) {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DB.Driver))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}

	switch strings.ToLower(c.Session.Backend) {
	case "cookie":
		if c.Session.Secret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required for the cookie backend"))
		}
	case "redis":
		if c.Redis.URL == "" && c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR or REDIS_URL is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND must be cookie or redis, got %q", c.Session.Backend))
	}
	if c.Session.MaxAge <= 0 {
		errs = append(errs, errors.New("SESSION_MAX_AGE must be positive"))
	}

	if c.Production() && c.Session.Secret == DevSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}

	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
