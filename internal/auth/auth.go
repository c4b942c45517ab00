// Package auth checks credentials against the users table.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/storekeep/storekeep/internal/database"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrWrongPassword         = errors.New("wrong password")
	ErrWrongAdminPassword    = errors.New("wrong admin password")
	ErrMissingCredentialPart = errors.New("user name and password are required")
)

// UserStore is the part of the store used for credential checks.
type UserStore interface {
	GetUserByName(ctx context.Context, name string) (*database.User, error)
	HasAdminWithPassword(ctx context.Context, password string) (bool, error)
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Name    string
	IsAdmin bool
}

// Login checks name and password. Passwords are compared as stored.
func Login(ctx context.Context, store UserStore, name, password string) (*LoginResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, ErrMissingCredentialPart
	}

	user, err := store.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			log.Debug("login for unknown user", "user", name)
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Password != password {
		log.Debug("wrong password", "user", name)
		return nil, ErrWrongPassword
	}

	log.Debug("login succeeded", "user", name, "admin", user.Admin)
	return &LoginResult{Name: user.Name, IsAdmin: user.IsAdmin()}, nil
}

// CheckAdminPassword succeeds when any admin user has the given password.
func CheckAdminPassword(ctx context.Context, store UserStore, password string) error {
	ok, err := store.HasAdminWithPassword(ctx, strings.TrimSpace(password))
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongAdminPassword
	}
	return nil
}
