// Package bolt stores the ledger state in a bbolt file.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetbook/internal/core"
	"budgetbook/internal/storage"

	bolt "go.etcd.io/bbolt"
)

// Bucket holds one key per ledger.
const Bucket = "ledger"

type Repository struct {
	db  *bolt.DB
	key []byte
}

// New opens (or creates) the database at path and ensures the bucket exists.
func New(path, key string) (*Repository, error) {
	if key == "" {
		key = storage.DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(Bucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", Bucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db, key: []byte(key)}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Load(_ context.Context) (core.State, error) {
	var data []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", Bucket)
		}
		v := b.Get(r.key)
		if v == nil {
			return storage.ErrNotFound
		}
		// v is only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return core.State{}, err
	}
	return storage.Decode(data)
}

func (r *Repository) Save(_ context.Context, s core.State) error {
	data, err := storage.Encode(s)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", Bucket)
		}
		return b.Put(r.key, data)
	})
}
