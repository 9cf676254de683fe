package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/pluscodes/internal/core/ports"
)

// keyPrefix namespaces every key so the cache can share a Valkey instance.
const keyPrefix = "pluscodes:"

// Cache implements ports.CacheService using Valkey (Redis-compatible).
type Cache struct {
	client valkey.Client
}

// New creates a new Valkey cache client.
func New(addr string) (*Cache, error) {
	return NewWithOptions(valkey.ClientOption{
		InitAddress: []string{addr},
	})
}

// NewWithOptions creates a cache from explicit client options, for servers
// that lack client-side caching support.
func NewWithOptions(opt valkey.ClientOption) (*Cache, error) {
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Cache{client: client}, nil
}

// Get retrieves a value by key. A missing key yields ports.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(keyPrefix+key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return b, nil
}

// Set stores a value with a TTL in seconds. A TTL of zero keeps the key.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	set := c.client.B().Set().Key(keyPrefix + key).Value(valkey.BinaryString(value))
	if ttlSeconds > 0 {
		return c.client.Do(ctx, set.Ex(time.Duration(ttlSeconds)*time.Second).Build()).Error()
	}
	return c.client.Do(ctx, set.Build()).Error()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(keyPrefix+key).Build()).Error()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
