// Package config loads CLI settings from the environment and an optional
// .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pioneersx/pioneersx/pkg/session"
)

// Session backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for an unsupported PIONEERSX_SESSION_BACKEND.
var ErrUnknownBackend = errors.New("unknown session backend")

// Config holds every PIONEERSX_* setting.
type Config struct {
	APIURL         string        `env:"API_URL" envDefault:"https://api.pioneersx.store/api"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"file"`
	SessionDir     string        `env:"SESSION_DIR"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix    string        `env:"REDIS_PREFIX" envDefault:"pioneersx:session"`
	RedisTTL       time.Duration `env:"REDIS_TTL" envDefault:"0s"`
	SQLitePath     string        `env:"SQLITE_PATH"`
}

// Load reads .env (when present) and the PIONEERSX_* variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}
	return Parse(os.Environ())
}

// Parse builds a Config from KEY=VALUE pairs without touching the process
// environment.
func Parse(environ []string) (Config, error) {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PIONEERSX_", Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config.Parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("config: PIONEERSX_API_URL is empty")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("config: PIONEERSX_HTTP_TIMEOUT is negative")
	}
	switch c.SessionBackend {
	case BackendFile, BackendRedis, BackendSQLite, BackendMemory:
		return nil
	default:
		return fmt.Errorf("config: %w %q", ErrUnknownBackend, c.SessionBackend)
	}
}

// OpenStore builds the configured session store. The returned close
// function releases backend connections and is never nil.
func (c Config) OpenStore(ctx context.Context) (session.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.SessionBackend {
	case BackendMemory:
		return session.NewMemoryStore(), noop, nil
	case BackendRedis:
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("config.OpenStore: parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close() //nolint:errcheck
			return nil, noop, fmt.Errorf("config.OpenStore: ping redis: %w", err)
		}
		return session.NewRedisStore(rdb, c.RedisPrefix, c.RedisTTL), rdb.Close, nil
	case BackendSQLite:
		path := c.SQLitePath
		if path == "" {
			dir, err := c.sessionDir()
			if err != nil {
				return nil, noop, err
			}
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, noop, fmt.Errorf("config.OpenStore: create %s: %w", dir, err)
			}
			path = filepath.Join(dir, "session.db")
		}
		s, err := session.OpenSQLiteStore(ctx, path)
		if err != nil {
			return nil, noop, fmt.Errorf("config.OpenStore: %w", err)
		}
		return s, s.Close, nil
	case BackendFile:
		dir, err := c.sessionDir()
		if err != nil {
			return nil, noop, err
		}
		return session.NewFileStore(dir), noop, nil
	default:
		return nil, noop, fmt.Errorf("config.OpenStore: %w %q", ErrUnknownBackend, c.SessionBackend)
	}
}

func (c Config) sessionDir() (string, error) {
	if c.SessionDir != "" {
		return c.SessionDir, nil
	}
	dir, err := session.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return dir, nil
}
