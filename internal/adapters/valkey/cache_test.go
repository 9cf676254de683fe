package valkey_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	valkeygo "github.com/valkey-io/valkey-go"

	"github.com/samirrijal/pluscodes/internal/adapters/valkey"
	"github.com/samirrijal/pluscodes/internal/core/ports"
)

func newTestCache(t *testing.T) (*valkey.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := valkey.NewWithOptions(valkeygo.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return cache, mr
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "olc:decode:8FVC9G8F+6X", []byte("area"), 60))

	got, err := c.Get(ctx, "olc:decode:8FVC9G8F+6X")
	require.NoError(t, err)
	assert.Equal(t, []byte("area"), got)

	raw, err := mr.Get("pluscodes:olc:decode:8FVC9G8F+6X")
	require.NoError(t, err)
	assert.Equal(t, "area", raw)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestCache_Set_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10))
	assert.Equal(t, 10*time.Second, mr.TTL("pluscodes:short"))

	mr.FastForward(11 * time.Second)
	_, err := c.Get(ctx, "short")
	require.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestCache_Set_NoTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))
	assert.Zero(t, mr.TTL("pluscodes:forever"))
}

func TestCache_Set_Binary(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	val := []byte{0x00, 0xff, 0x81, 0x0a}
	require.NoError(t, c.Set(ctx, "bin", val, 60))

	got, err := c.Get(ctx, "bin")
	require.NoError(t, err)
	assert.Equal(t, val, got)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "gone", []byte("x"), 60))
	require.NoError(t, c.Delete(ctx, "gone"))
	assert.False(t, mr.Exists("pluscodes:gone"))

	_, err := c.Get(ctx, "gone")
	require.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestCache_Ping(t *testing.T) {
	c, _ := newTestCache(t)
	assert.NoError(t, c.Ping(context.Background()))
}
