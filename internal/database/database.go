package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS "users" (
	"name"     TEXT NOT NULL UNIQUE,
	"password" TEXT NOT NULL UNIQUE,
	"email"    TEXT NOT NULL UNIQUE,
	"admin"    INTEGER NOT NULL,
	PRIMARY KEY("name","password","email","admin")
)`

const createInventorySQL = `
CREATE TABLE IF NOT EXISTS "inventario" (
	"id"                INTEGER NOT NULL UNIQUE,
	"nombre_producto"   TEXT NOT NULL,
	"precio_producto"   TEXT NOT NULL,
	"cantidad_producto" TEXT,
	PRIMARY KEY("id","nombre_producto")
)`

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New opens the SQLite store at dbpath. The file is created on first use;
// missing parent directories are created as well.
// Unlike AutoMigrate, opening does not touch the schema; call EnsureSchema for that.
func New(dbpath string) (*Client, error) {
	if dir := filepath.Dir(dbpath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// sqlite defers reading the file until the first statement that needs it
	var schemaVersion int64
	if err := db.Raw("PRAGMA schema_version").Scan(&schemaVersion).Error; err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close() //nolint: errcheck, gosec
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Client{db: db}, nil
}

// EnsureSchema creates the users and inventario tables if they do not exist.
// Both statements run in one transaction and are committed together.
func (c *Client) EnsureSchema(ctx context.Context) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(createUsersSQL).Error; err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}
		if err := tx.Exec(createInventorySQL).Error; err != nil {
			return fmt.Errorf("failed to create inventario table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug("schema ready", "tables", []string{usersTable, inventoryTable})
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
