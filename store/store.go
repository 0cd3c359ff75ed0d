// Package store is the record store for users and their attendance.
//
// Lookups by id return (value, found, err): found is false with a nil error when no
// row matches, so callers must handle the missing case explicitly.
package store

import (
	"gorm.io/gorm"

	"github.com/pkg/errors"
)

var (
	ErrUsernameExists = errors.New("Username already exists")
	ErrEmailExists    = errors.New("Email already exists")
)

// Store wraps a gorm handle. Every mutating method runs in one transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// first loads the first row matching conds into dest.
func first(tx *gorm.DB, dest interface{}, conds ...interface{}) (bool, error) {
	err := tx.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
