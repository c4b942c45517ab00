// Package initializer creates the store schema and optionally seeds a test user.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/storekeep/storekeep/internal/database"
)

// SeedStatus describes what happened to the seed user.
type SeedStatus string

const (
	SeedNotRequested SeedStatus = "not_requested"
	SeedInserted     SeedStatus = "inserted"
	SeedSkipped      SeedStatus = "skipped"
	SeedFailed       SeedStatus = "failed"
)

// Options controls a single initializer run.
type Options struct {
	// Path is the store file.
	Path string
	// AddUser inserts the seed user when no user with its name exists.
	AddUser bool
	// Admin is the admin flag of the seed user, 0 or 1.
	Admin int
	// Seed is the seed record; its Admin field is overwritten by Options.Admin.
	Seed database.User
}

// Result reports what a run did.
type Result struct {
	// Created is true when the store file did not exist before the run.
	Created bool
	Seed    SeedStatus
	// SeedError is set when the seed insert failed.
	SeedError error
}

// Opener opens the store at path.
type Opener func(path string) (database.DB, error)

// OpenClient opens a SQLite store.
func OpenClient(path string) (database.DB, error) {
	return database.New(path)
}

// Run ensures the schema of the store at opts.Path and seeds the test user if asked.
// It fails only when the store cannot be opened or the schema cannot be created;
// a failed seed insert is reported in the result.
func Run(ctx context.Context, open Opener, opts Options) (*Result, error) {
	if opts.Admin != database.AdminNo && opts.Admin != database.AdminYes {
		return nil, fmt.Errorf("admin must be 0 or 1, got %d", opts.Admin)
	}

	res := &Result{Seed: SeedNotRequested}

	exists, err := fileExists(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check database file: %w", err)
	}
	if !exists {
		res.Created = true
		log.Warn("database file not found, it will be created on connect", "path", opts.Path)
	}

	db, err := open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint: errcheck

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	log.Info("tables 'users' and 'inventario' created or already present")

	if opts.AddUser {
		res.Seed, res.SeedError = seed(ctx, db, opts)
	}

	return res, nil
}

func seed(ctx context.Context, db database.DB, opts Options) (SeedStatus, error) {
	user := opts.Seed
	user.Admin = opts.Admin

	count, err := db.CountUsersByName(ctx, user.Name)
	if err != nil {
		log.Error("failed to look up seed user", "name", user.Name, "error", err)
		return SeedFailed, err
	}
	if count > 0 {
		log.Info("user already exists, not inserting", "name", user.Name)
		return SeedSkipped, nil
	}

	if err := db.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			log.Error("could not insert seed user, a conflicting user exists", "name", user.Name, "error", err)
			return SeedFailed, err
		}
		log.Error("failed to insert seed user", "name", user.Name, "error", err)
		return SeedFailed, err
	}

	log.Info("user inserted", "name", user.Name, "admin", user.Admin)
	return SeedInserted, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
