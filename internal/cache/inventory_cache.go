package cache

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/storekeep/storekeep/internal/config"
	"github.com/storekeep/storekeep/internal/database"
)

// InventoryItemCachePrefix prefixes inventory item keys.
const InventoryItemCachePrefix = "inventory-item-"

// InventoryCache caches inventory items by id.
type InventoryCache struct {
	Items *PrefixedCache[database.Product]
}

func NewInventoryCache(cfg *config.CacheConfig) *InventoryCache {
	if cfg == nil {
		cfg = &config.CacheConfig{Type: config.CacheTypeMemory}
	}
	return &InventoryCache{
		Items: NewPrefixedCache[database.Product](
			newCacheInstanceByType(cfg),
			cfg.Type,
			InventoryItemCachePrefix,
		),
	}
}

// Invalidate drops the cached entry for id. Errors are logged, not returned.
func (c *InventoryCache) Invalidate(ctx context.Context, id int64) {
	if err := c.Items.Delete(ctx, id); err != nil {
		log.Debug("failed to invalidate inventory cache", "id", id, "error", err)
	}
}
