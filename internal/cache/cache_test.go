package cache

import (
	"context"
	"testing"
	"time"

	"github.com/storekeep/storekeep/internal/config"
	"github.com/storekeep/storekeep/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixedCache_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.CacheConfig{Type: config.CacheTypeMemory, TTL: time.Minute}
	c := NewPrefixedCache[database.Product](newCacheInstanceByType(cfg), cfg.Type, "test-")

	_, err := c.Get(ctx, 1)
	assert.Error(t, err, "miss should return an error")

	item := database.Product{ID: 1, Name: "Pan", Price: 1.25, Quantity: 3}
	require.NoError(t, c.Set(ctx, 1, item))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	require.NoError(t, c.Delete(ctx, 1))
	_, err = c.Get(ctx, 1)
	assert.Error(t, err)

	assert.Equal(t, config.CacheTypeMemory, c.GetType())
}

func TestInventoryCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewInventoryCache(nil)

	require.NoError(t, c.Items.Set(ctx, int64(5), database.Product{ID: 5, Name: "Cafe"}))
	c.Invalidate(ctx, 5)

	_, err := c.Items.Get(ctx, int64(5))
	assert.Error(t, err)

	// invalidating a missing key is harmless
	c.Invalidate(ctx, 42)
}
