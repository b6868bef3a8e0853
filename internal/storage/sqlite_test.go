package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetbook/internal/core"
)

func TestSQLiteRepositorySaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")

	repo, err := NewSQLiteRepository(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty database, got %v", err)
	}

	state := sampleState()
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	state.Settings.UserName = "Ada"
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(path, DefaultKey)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want, _ := Encode(state)
	have, _ := Encode(got)
	if !bytes.Equal(want, have) {
		t.Fatalf("loaded state differs:\n%s\n%s", want, have)
	}
}

func TestSQLiteRepositoryKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	a, err := NewSQLiteRepository(path, "a")
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	defer a.Close()
	b, err := NewSQLiteRepository(path, "b")
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()

	if err := a.Save(ctx, core.NewState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := b.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other key, got %v", err)
	}
}
