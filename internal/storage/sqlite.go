package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetbook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the ledger in a single row of ledger_state.
type SQLiteRepository struct {
	db  *sql.DB
	key string
}

func NewSQLiteRepository(dbPath, key string) (*SQLiteRepository, error) {
	if key == "" {
		key = DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, key: key}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (core.State, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_state WHERE storage_key = ?`, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.State{}, ErrNotFound
	}
	if err != nil {
		return core.State{}, fmt.Errorf("load ledger state: %w", err)
	}
	return Decode(payload)
}

// Save upserts the state in one statement.
func (r *SQLiteRepository) Save(ctx context.Context, s core.State) error {
	payload, err := Encode(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ledger_state (storage_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		r.key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save ledger state: %w", err)
	}

	slog.DebugContext(ctx, "Ledger state saved to SQLite",
		"key", r.key,
		"transactions", len(s.Transactions),
		"bytes", len(payload))
	return nil
}
