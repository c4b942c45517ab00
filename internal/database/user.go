package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

const usersTable = "users"

// Admin flag values as stored in the users table.
const (
	AdminNo  = 0
	AdminYes = 1
)

// User represents a row of the users table.
// Passwords are stored as given; the table layout keys on all four columns.
type User struct {
	Name     string `gorm:"column:name;primaryKey"`
	Password string `gorm:"column:password;primaryKey"`
	Email    string `gorm:"column:email;primaryKey"`
	Admin    int    `gorm:"column:admin;primaryKey;autoIncrement:false"`
}

func (User) TableName() string {
	return usersTable
}

// IsAdmin reports whether the admin flag is set.
func (u *User) IsAdmin() bool {
	return u.Admin == AdminYes
}

// CreateUser inserts the user in its own transaction.
// A uniqueness violation rolls back and returns ErrAlreadyExists.
func (c *Client) CreateUser(ctx context.Context, user *User) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		log.Error("failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (c *Client) CountUsersByName(ctx context.Context, name string) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (c *Client) GetUserByName(ctx context.Context, name string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by name", "error", err)
		return nil, err
	}
	return &user, nil
}

// HasAdminWithPassword reports whether any admin user has the given password.
func (c *Client) HasAdminWithPassword(ctx context.Context, password string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&User{}).
		Where("admin = ? AND password = ?", AdminYes, password).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check admin password: %w", err)
	}
	return count > 0, nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (c *Client) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Where("admin = ?", AdminYes).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
