package inventory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/storekeep/storekeep/internal/cache"
	"github.com/storekeep/storekeep/internal/config"
	"github.com/storekeep/storekeep/internal/database"
	dbmock "github.com/storekeep/storekeep/internal/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache() *cache.InventoryCache {
	return cache.NewInventoryCache(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: time.Minute})
}

func TestService_SellAndBuy(t *testing.T) {
	ctx := context.Background()
	client, err := database.New(filepath.Join(t.TempDir(), "database.db"))
	require.NoError(t, err)
	defer client.Close() //nolint: errcheck
	require.NoError(t, client.EnsureSchema(ctx))

	svc := New(client, newCache())
	require.NoError(t, svc.Add(ctx, &database.Product{ID: 1, Name: "Cafe", Price: 3.5, Quantity: 5}))

	item, err := svc.Sell(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.Quantity)

	_, err = svc.Sell(ctx, 1, 4)
	assert.ErrorIs(t, err, database.ErrInsufficientStock)

	item, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.Quantity, "failed sale must leave stock unchanged")

	item, err = svc.Buy(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(13), item.Quantity)

	for _, q := range []int64{0, -1} {
		_, err = svc.Sell(ctx, 1, q)
		assert.ErrorIs(t, err, database.ErrInvalidQuantity)
		_, err = svc.Buy(ctx, 1, q)
		assert.ErrorIs(t, err, database.ErrInvalidQuantity)
	}
}

func TestService_GetUsesCache(t *testing.T) {
	ctx := context.Background()
	db := dbmock.NewMockDB()
	svc := New(db, newCache())

	require.NoError(t, svc.Add(ctx, &database.Product{ID: 3, Name: "Pan", Price: 1, Quantity: 2}))

	_, err := svc.Get(ctx, 3)
	require.NoError(t, err)

	// served from cache even though the store now fails
	db.GetInventoryError = errors.New("store down")
	item, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Pan", item.Name)
}

func TestService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	db := dbmock.NewMockDB()
	svc := New(db, newCache())

	require.NoError(t, svc.Add(ctx, &database.Product{ID: 3, Name: "Pan", Price: 1, Quantity: 2}))
	_, err := svc.Get(ctx, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, &database.Product{ID: 3, Name: "Pan dulce", Price: 2, Quantity: 2}))

	item, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Pan dulce", item.Name)

	err = svc.Update(ctx, &database.Product{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := New(dbmock.NewMockDB(), newCache())

	tests := []struct {
		name string
		item database.Product
	}{
		{name: "blank name", item: database.Product{ID: 1, Name: "  ", Price: 1}},
		{name: "negative price", item: database.Product{ID: 1, Name: "a", Price: -1}},
		{name: "negative quantity", item: database.Product{ID: 1, Name: "a", Price: 1, Quantity: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			assert.Error(t, svc.Add(ctx, &item))
		})
	}

	_, err := svc.GetByName(ctx, " ")
	assert.Error(t, err)
}

func TestService_GetByName(t *testing.T) {
	ctx := context.Background()
	svc := New(dbmock.NewMockDB(), newCache())

	require.NoError(t, svc.Add(ctx, &database.Product{ID: 4, Name: "Leche", Price: 2}))

	item, err := svc.GetByName(ctx, "LECHE")
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)

	_, err = svc.GetByName(ctx, "agua")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
