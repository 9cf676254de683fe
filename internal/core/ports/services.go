package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by CacheService.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by dependencies the readiness probe pings.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
