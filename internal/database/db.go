package database

import "context"

// DB defines the store operations used by the commands.
type DB interface {
	// Schema
	EnsureSchema(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *User) error
	CountUsersByName(ctx context.Context, name string) (int64, error)
	GetUserByName(ctx context.Context, name string) (*User, error)
	HasAdminWithPassword(ctx context.Context, password string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)

	// Inventory
	ListInventory(ctx context.Context) ([]Product, error)
	GetInventoryByID(ctx context.Context, id int64) (*Product, error)
	GetInventoryByName(ctx context.Context, name string) (*Product, error)
	CreateInventoryItem(ctx context.Context, item *Product) error
	UpdateInventoryItem(ctx context.Context, item *Product) error
	AdjustInventoryQuantity(ctx context.Context, id, delta int64) (*Product, error)

	// Utility
	Close() error
}
