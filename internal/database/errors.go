package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrAlreadyExists is returned when an insert violates a uniqueness constraint.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotFound is returned when a lookup or update matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidQuantity is returned for non-positive sale or purchase quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrInsufficientStock is returned when a sale exceeds the stored quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// isUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
// Untranslated driver errors are matched on the sqlite message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
