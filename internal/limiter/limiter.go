// Package limiter provides per-client request rate limiting for the HTTP API.
package limiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	// Allow reports whether the client identified by key is within its limit
	Allow(ctx context.Context, key string) bool

	// Close releases resources held by the limiter
	Close() error
}

// Config holds configuration for creating a rate limiter
type Config struct {
	Type   string        // "memory" or "redis"
	Limit  int           // requests allowed per window
	Window time.Duration // window length

	// Redis is required for the "redis" type; the limiter does not close it
	Redis  *redis.Client
	Logger *logger.Logger
}

// NewLimiter creates a rate limiter based on the configuration (factory pattern)
func NewLimiter(cfg Config) (Limiter, error) {
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", cfg.Limit)
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "memory", "":
		return NewMemoryLimiter(cfg.Limit, cfg.Window), nil

	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis rate limiter requires a Redis client")
		}
		return NewRedisLimiter(cfg.Redis, cfg.Limit, cfg.Window, cfg.Logger), nil

	default:
		return nil, fmt.Errorf("unknown rate limiter type: %s (supported: 'memory', 'redis')", cfg.Type)
	}
}
