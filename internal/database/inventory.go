package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

const inventoryTable = "inventario"

// Product is an inventory item with its price and quantity parsed from their TEXT columns.
// A missing quantity reads as 0.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// inventoryRow mirrors the inventario table as stored.
type inventoryRow struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name     string  `gorm:"column:nombre_producto;primaryKey"`
	Price    string  `gorm:"column:precio_producto;not null"`
	Quantity *string `gorm:"column:cantidad_producto"`
}

func (inventoryRow) TableName() string {
	return inventoryTable
}

const selectProducts = `
SELECT id, nombre_producto AS name, CAST(precio_producto AS REAL) AS price,
       COALESCE(CAST(cantidad_producto AS INTEGER), 0) AS quantity
FROM inventario`

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func formatQuantity(quantity int64) string {
	return strconv.FormatInt(quantity, 10)
}

func (c *Client) ListInventory(ctx context.Context) ([]Product, error) {
	var items []Product
	err := c.db.WithContext(ctx).
		Raw(selectProducts + ` ORDER BY id, nombre_producto, precio_producto, cantidad_producto`).
		Scan(&items).Error
	if err != nil {
		log.Error("failed to list inventory", "error", err)
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (c *Client) GetInventoryByID(ctx context.Context, id int64) (*Product, error) {
	return getProduct(c.db.WithContext(ctx), selectProducts+` WHERE id = ? LIMIT 1`, id)
}

// GetInventoryByName looks up an item by name, ignoring case.
func (c *Client) GetInventoryByName(ctx context.Context, name string) (*Product, error) {
	return getProduct(c.db.WithContext(ctx), selectProducts+` WHERE LOWER(nombre_producto) = LOWER(?) LIMIT 1`, name)
}

func getProduct(db *gorm.DB, query string, arg any) (*Product, error) {
	var items []Product
	if err := db.Raw(query, arg).Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// CreateInventoryItem inserts a new item. A zero quantity is stored as NULL.
func (c *Client) CreateInventoryItem(ctx context.Context, item *Product) error {
	row := inventoryRow{
		ID:    item.ID,
		Name:  item.Name,
		Price: formatPrice(item.Price),
	}
	if item.Quantity != 0 {
		quantity := formatQuantity(item.Quantity)
		row.Quantity = &quantity
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		log.Error("failed to create inventory item", "error", err)
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// UpdateInventoryItem overwrites name, price and quantity of the item with item.ID.
func (c *Client) UpdateInventoryItem(ctx context.Context, item *Product) error {
	result := c.db.WithContext(ctx).Exec(
		`UPDATE inventario SET nombre_producto = ?, precio_producto = ?, cantidad_producto = ? WHERE id = ?`,
		item.Name, formatPrice(item.Price), formatQuantity(item.Quantity), item.ID,
	)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: %w", ErrAlreadyExists, result.Error)
		}
		log.Error("failed to update inventory item", "error", result.Error)
		return fmt.Errorf("failed to update inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustInventoryQuantity adds delta to the stored quantity of item id and returns the updated item.
// A negative delta is a sale and fails with ErrInsufficientStock when it would go below zero.
func (c *Client) AdjustInventoryQuantity(ctx context.Context, id, delta int64) (*Product, error) {
	var updated *Product
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := getProduct(tx, selectProducts+` WHERE id = ? LIMIT 1`, id)
		if err != nil {
			return err
		}
		if item.Quantity+delta < 0 {
			return fmt.Errorf("%w: available %d", ErrInsufficientStock, item.Quantity)
		}
		item.Quantity += delta
		if err := tx.Exec(
			`UPDATE inventario SET cantidad_producto = ? WHERE id = ?`,
			formatQuantity(item.Quantity), id,
		).Error; err != nil {
			return fmt.Errorf("failed to update quantity: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInsufficientStock) {
			log.Error("failed to adjust inventory quantity", "id", id, "error", err)
		}
		return nil, err
	}
	return updated, nil
}
