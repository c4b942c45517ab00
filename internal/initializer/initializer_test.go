package initializer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/storekeep/storekeep/internal/database"
	dbmock "github.com/storekeep/storekeep/internal/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedUser = database.User{Name: "user", Password: "user", Email: "user@example.com"}

func mockOpener(db *dbmock.MockDB) Opener {
	return func(string) (database.DB, error) { return db, nil }
}

func countByName(t *testing.T, path, name string) int64 {
	t.Helper()
	client, err := database.New(path)
	require.NoError(t, err)
	defer client.Close() //nolint: errcheck

	count, err := client.CountUsersByName(context.Background(), name)
	require.NoError(t, err)
	return count
}

func TestRun_FreshStoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.db")

	res, err := Run(ctx, OpenClient, Options{Path: path, Admin: 1, Seed: seedUser})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, SeedNotRequested, res.Seed)

	_, err = os.Stat(path)
	require.NoError(t, err, "store file should exist")

	res, err = Run(ctx, OpenClient, Options{Path: path, Admin: 1, Seed: seedUser})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, int64(0), countByName(t, path, "user"))
}

func TestRun_SeedTwice(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.db")
	opts := Options{Path: path, AddUser: true, Admin: 1, Seed: seedUser}

	res, err := Run(ctx, OpenClient, opts)
	require.NoError(t, err)
	assert.Equal(t, SeedInserted, res.Seed)

	res, err = Run(ctx, OpenClient, opts)
	require.NoError(t, err)
	assert.Equal(t, SeedSkipped, res.Seed)

	assert.Equal(t, int64(1), countByName(t, path, "user"))
}

func TestRun_SeedAdminFlag(t *testing.T) {
	for _, admin := range []int{0, 1} {
		db := dbmock.NewMockDB()

		res, err := Run(context.Background(), mockOpener(db), Options{Path: "unused.db", AddUser: true, Admin: admin, Seed: seedUser})
		require.NoError(t, err)
		assert.Equal(t, SeedInserted, res.Seed)

		users := db.Users()
		require.Len(t, users, 1)
		assert.Equal(t, admin, users[0].Admin)
		assert.Equal(t, "user@example.com", users[0].Email)
		assert.True(t, db.Closed)
	}
}

func TestRun_SeedConflictIsNotFatal(t *testing.T) {
	db := dbmock.NewMockDB()
	// same password and email under another name: the name check passes, the insert fails
	require.NoError(t, db.CreateUser(context.Background(), &database.User{Name: "other", Password: "user", Email: "user@example.com"}))

	res, err := Run(context.Background(), mockOpener(db), Options{Path: "unused.db", AddUser: true, Admin: 1, Seed: seedUser})
	require.NoError(t, err)
	assert.Equal(t, SeedFailed, res.Seed)
	assert.ErrorIs(t, res.SeedError, database.ErrAlreadyExists)
	assert.True(t, db.Closed)
}

func TestRun_InvalidAdmin(t *testing.T) {
	db := dbmock.NewMockDB()

	_, err := Run(context.Background(), mockOpener(db), Options{Path: "unused.db", AddUser: true, Admin: 2, Seed: seedUser})
	assert.Error(t, err)
	assert.Empty(t, db.Users())
}

func TestRun_OpenFailure(t *testing.T) {
	_, err := Run(context.Background(), OpenClient, Options{Path: t.TempDir(), Admin: 1, Seed: seedUser})
	assert.Error(t, err)

	openErr := errors.New("boom")
	_, err = Run(context.Background(), func(string) (database.DB, error) { return nil, openErr }, Options{Path: "x.db", Admin: 1})
	assert.ErrorIs(t, err, openErr)
}

func TestRun_SchemaFailure(t *testing.T) {
	db := dbmock.NewMockDB()
	db.EnsureSchemaError = errors.New("read-only database")

	_, err := Run(context.Background(), mockOpener(db), Options{Path: "unused.db", AddUser: true, Admin: 1, Seed: seedUser})
	assert.Error(t, err)
	assert.True(t, db.Closed)
	assert.Equal(t, 0, db.CreateUserCalls)
}
