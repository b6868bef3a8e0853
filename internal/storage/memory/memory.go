// Package memory is an in-process storage.Repository. State goes through
// the same codec as the durable backends.
package memory

import (
	"context"
	"sync"

	"budgetbook/internal/core"
	"budgetbook/internal/storage"
)

type Repository struct {
	mu      sync.Mutex
	payload []byte
	saves   int
}

func New() *Repository {
	return &Repository{}
}

// NewWithPayload starts with raw bytes, which need not be valid.
func NewWithPayload(payload []byte) *Repository {
	return &Repository{payload: append([]byte(nil), payload...)}
}

func (r *Repository) Load(_ context.Context) (core.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.payload == nil {
		return core.State{}, storage.ErrNotFound
	}
	return storage.Decode(r.payload)
}

func (r *Repository) Save(_ context.Context, s core.State) error {
	data, err := storage.Encode(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.payload = data
	r.saves++
	r.mu.Unlock()
	return nil
}

func (r *Repository) Close() error { return nil }

// Saves reports how many times Save succeeded.
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
