package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/storekeep/storekeep/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users     []database.User
	inventory map[int64]*database.Product

	// Call tracking
	CreateUserCalls int
	Closed          bool

	// Error simulation
	EnsureSchemaError     error
	CreateUserError       error
	CountUsersByNameError error
	GetUserByNameError    error
	ListInventoryError    error
	GetInventoryError     error
	CreateInventoryError  error
	UpdateInventoryError  error
	AdjustInventoryError  error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		inventory: make(map[int64]*database.Product),
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = nil
	m.inventory = make(map[int64]*database.Product)
	m.CreateUserCalls = 0
	m.Closed = false

	m.EnsureSchemaError = nil
	m.CreateUserError = nil
	m.CountUsersByNameError = nil
	m.GetUserByNameError = nil
	m.ListInventoryError = nil
	m.GetInventoryError = nil
	m.CreateInventoryError = nil
	m.UpdateInventoryError = nil
	m.AdjustInventoryError = nil
}

// Users returns a copy of the stored users.
func (m *MockDB) Users() []database.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]database.User(nil), m.users...)
}

func (m *MockDB) EnsureSchema(ctx context.Context) error {
	return m.EnsureSchemaError
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, user *database.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateUserCalls++
	if m.CreateUserError != nil {
		return m.CreateUserError
	}

	// every column is UNIQUE in the real table
	for _, u := range m.users {
		if u.Name == user.Name || u.Password == user.Password || u.Email == user.Email {
			return fmt.Errorf("%w: users", database.ErrAlreadyExists)
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *MockDB) CountUsersByName(ctx context.Context, name string) (int64, error) {
	if m.CountUsersByNameError != nil {
		return 0, m.CountUsersByNameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, u := range m.users {
		if u.Name == name {
			count++
		}
	}
	return count, nil
}

func (m *MockDB) GetUserByName(ctx context.Context, name string) (*database.User, error) {
	if m.GetUserByNameError != nil {
		return nil, m.GetUserByNameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Name == name {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) HasAdminWithPassword(ctx context.Context, password string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.IsAdmin() && u.Password == password {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockDB) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.users)), nil
}

func (m *MockDB) CountAdmins(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, u := range m.users {
		if u.IsAdmin() {
			count++
		}
	}
	return count, nil
}

// Inventory operations

func (m *MockDB) ListInventory(ctx context.Context) ([]database.Product, error) {
	if m.ListInventoryError != nil {
		return nil, m.ListInventoryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]database.Product, 0, len(m.inventory))
	for _, item := range m.inventory {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MockDB) GetInventoryByID(ctx context.Context, id int64) (*database.Product, error) {
	if m.GetInventoryError != nil {
		return nil, m.GetInventoryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.inventory[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	found := *item
	return &found, nil
}

func (m *MockDB) GetInventoryByName(ctx context.Context, name string) (*database.Product, error) {
	if m.GetInventoryError != nil {
		return nil, m.GetInventoryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.inventory {
		if strings.EqualFold(item.Name, name) {
			found := *item
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) CreateInventoryItem(ctx context.Context, item *database.Product) error {
	if m.CreateInventoryError != nil {
		return m.CreateInventoryError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inventory[item.ID]; ok {
		return fmt.Errorf("%w: inventario", database.ErrAlreadyExists)
	}
	stored := *item
	m.inventory[item.ID] = &stored
	return nil
}

func (m *MockDB) UpdateInventoryItem(ctx context.Context, item *database.Product) error {
	if m.UpdateInventoryError != nil {
		return m.UpdateInventoryError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inventory[item.ID]; !ok {
		return database.ErrNotFound
	}
	stored := *item
	m.inventory[item.ID] = &stored
	return nil
}

func (m *MockDB) AdjustInventoryQuantity(ctx context.Context, id, delta int64) (*database.Product, error) {
	if m.AdjustInventoryError != nil {
		return nil, m.AdjustInventoryError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.inventory[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if item.Quantity+delta < 0 {
		return nil, fmt.Errorf("%w: available %d", database.ErrInsufficientStock, item.Quantity)
	}
	item.Quantity += delta
	updated := *item
	return &updated, nil
}

func (m *MockDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	return nil
}
