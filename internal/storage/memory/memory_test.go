package memory

import (
	"context"
	"errors"
	"testing"

	"budgetbook/internal/core"
	"budgetbook/internal/storage"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	r := New()
	if _, err := r.Load(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s := core.NewState()
	s.Settings.Currency = "EUR"
	if err := r.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Settings.Currency = "USD" // must not leak into the stored copy

	got, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Settings.Currency != "EUR" {
		t.Fatalf("expected EUR, got %s", got.Settings.Currency)
	}
	if r.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", r.Saves())
	}
}

func TestRepositoryCorruptPayload(t *testing.T) {
	r := NewWithPayload([]byte("{broken"))
	if _, err := r.Load(context.Background()); !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}
