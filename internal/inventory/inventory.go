// Package inventory manages the inventario table: lookups, edits, sales and purchases.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/storekeep/storekeep/internal/cache"
	"github.com/storekeep/storekeep/internal/database"
)

// Service wraps the store with a read-through cache keyed by item id.
type Service struct {
	db    database.DB
	cache *cache.InventoryCache
}

func New(db database.DB, c *cache.InventoryCache) *Service {
	return &Service{
		db:    db,
		cache: c,
	}
}

func (s *Service) List(ctx context.Context) ([]database.Product, error) {
	return s.db.ListInventory(ctx)
}

// Get returns the item with the given id, from the cache when possible.
func (s *Service) Get(ctx context.Context, id int64) (*database.Product, error) {
	if item, err := s.cache.Items.Get(ctx, id); err == nil {
		log.Debug("inventory cache hit", "id", id)
		return &item, nil
	}

	item, err := s.db.GetInventoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, item)
	return item, nil
}

// GetByName looks an item up by name, ignoring case.
func (s *Service) GetByName(ctx context.Context, name string) (*database.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	item, err := s.db.GetInventoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, item)
	return item, nil
}

func (s *Service) Add(ctx context.Context, item *database.Product) error {
	if err := validate(item); err != nil {
		return err
	}
	if err := s.db.CreateInventoryItem(ctx, item); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, item.ID)
	return nil
}

func (s *Service) Update(ctx context.Context, item *database.Product) error {
	if err := validate(item); err != nil {
		return err
	}
	if err := s.db.UpdateInventoryItem(ctx, item); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, item.ID)
	return nil
}

// Sell removes quantity units of item id from stock.
func (s *Service) Sell(ctx context.Context, id, quantity int64) (*database.Product, error) {
	if quantity <= 0 {
		return nil, database.ErrInvalidQuantity
	}
	return s.adjust(ctx, id, -quantity)
}

// Buy adds quantity units of item id to stock.
func (s *Service) Buy(ctx context.Context, id, quantity int64) (*database.Product, error) {
	if quantity <= 0 {
		return nil, database.ErrInvalidQuantity
	}
	return s.adjust(ctx, id, quantity)
}

func (s *Service) adjust(ctx context.Context, id, delta int64) (*database.Product, error) {
	s.cache.Invalidate(ctx, id)
	item, err := s.db.AdjustInventoryQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, item)
	return item, nil
}

func (s *Service) remember(ctx context.Context, item *database.Product) {
	if err := s.cache.Items.Set(ctx, item.ID, *item); err != nil {
		log.Debug("failed to cache inventory item", "id", item.ID, "error", err)
	}
}

func validate(item *database.Product) error {
	item.Name = strings.TrimSpace(item.Name)
	switch {
	case item.Name == "":
		return fmt.Errorf("product name is required")
	case item.Price < 0:
		return fmt.Errorf("product price must not be negative")
	case item.Quantity < 0:
		return fmt.Errorf("product quantity must not be negative")
	}
	return nil
}
