package cli

import (
	"context"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/history"
)

// =============================================================================
// Serve Configuration
// =============================================================================

// serveConfig is the optional [serve] and [history] config carried in the
// manifest file alongside the route declarations.
type serveConfig struct {
	Serve struct {
		Addr string `toml:"addr"`
	} `toml:"serve"`
	History historyConfig `toml:"history"`
}

// historyConfig selects and configures the visit history backend.
type historyConfig struct {
	Backend string `toml:"backend"` // memory, file, redis, mongo, null
	Cap     int    `toml:"cap"`
	Dir     string `toml:"dir"` // file backend only

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		TTL      string `toml:"ttl"` // Go duration, e.g. "24h"
	} `toml:"redis"`

	Mongo struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`
}

// defaultAddr is the listen address when [serve].addr is unset.
const defaultAddr = "localhost:8321"

// loadServeConfig decodes the [serve] and [history] sections from the
// manifest file. Missing sections leave zero values; route declarations in
// the same file are ignored here.
func loadServeConfig(path string) (serveConfig, error) {
	var cfg serveConfig
	if path == "" {
		path = defaultManifest
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaultAddr
	}
	return cfg, nil
}

// =============================================================================
// History Backend Factory
// =============================================================================

// newStore builds the history backend named by cfg. An empty backend name
// means memory.
func newStore(ctx context.Context, cfg historyConfig) (history.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return history.NewMemoryStore(cfg.Cap), nil

	case "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := dataDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve history dir")
			}
			dir = base
		}
		return history.NewFileStore(dir, cfg.Cap)

	case "redis":
		ttl, err := parseTTL(cfg.Redis.TTL)
		if err != nil {
			return nil, err
		}
		return history.NewRedisStore(ctx, history.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Cap:      cfg.Cap,
			TTL:      ttl,
		})

	case "mongo":
		return history.NewMongoStore(ctx, history.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Cap:        cfg.Cap,
		})

	case "null":
		return history.NewNullStore(), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown history backend %q (want memory, file, redis, mongo, or null)", cfg.Backend)
	}
}

// parseTTL parses an optional Go duration string. Empty means zero, letting
// the store apply its own default.
func parseTTL(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse history ttl %q", s)
	}
	return d, nil
}
