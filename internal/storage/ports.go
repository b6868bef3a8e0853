// Package storage persists the ledger state as one record under a fixed key.
package storage

import (
	"context"
	"errors"

	"budgetbook/internal/core"
)

// DefaultKey is the storage identifier the ledger is saved under.
const DefaultKey = "finance-storage"

var (
	// ErrNotFound is returned by Load when nothing is stored under the key.
	ErrNotFound = errors.New("ledger state not found")

	// ErrCorrupt is returned when a stored payload cannot be decoded.
	ErrCorrupt = errors.New("ledger state corrupt")
)

// Repository loads and saves the whole ledger state atomically.
type Repository interface {
	Load(ctx context.Context) (core.State, error)
	Save(ctx context.Context, s core.State) error
	Close() error
}
