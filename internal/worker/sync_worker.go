package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"budgetbook/internal/amqp"
	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/sheets"
	"budgetbook/internal/storage"
)

// SyncWorker mirrors the persisted ledger to an external copy whenever a
// change message arrives. Bursts of messages are coalesced: a message only
// marks the mirror dirty, and Run flushes it once per interval.
type SyncWorker struct {
	repo     storage.Repository
	mirror   sheets.StateMirror
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time

	mu         sync.Mutex
	dirty      bool
	lastSynced time.Time
}

func NewSyncWorker(repo storage.Repository, mirror sheets.StateMirror, interval time.Duration, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Default(log.ComponentWorker)
	}
	return &SyncWorker{
		repo:     repo,
		mirror:   mirror,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentWorker),
		now:      time.Now,
	}
}

// HandleChangeMessage processes a single ledger change message from AMQP.
// Messages published before the last completed sync are already reflected
// in the mirror and are dropped.
func (w *SyncWorker) HandleChangeMessage(ctx context.Context, msg *amqp.ChangeMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.lastSynced.IsZero() && !msg.Timestamp.After(w.lastSynced) {
		w.logger.DebugContext(ctx, "Skipping stale change message",
			log.FieldEntity, msg.Entity,
			log.FieldKey, msg.Key)
		return nil
	}

	w.logger.DebugContext(ctx, "Processing change message",
		log.FieldEntity, msg.Entity,
		log.FieldOperation, msg.Operation,
		log.FieldKey, msg.Key)
	w.dirty = true
	return nil
}

// Pending reports whether a change is waiting to be mirrored.
func (w *SyncWorker) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

// Flush mirrors the stored ledger if a change is pending.
func (w *SyncWorker) Flush(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty {
		return nil
	}
	return w.syncLocked(ctx)
}

// StartupSyncCheck mirrors the stored ledger unconditionally. This recovers
// from messages missed while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.syncLocked(ctx); err != nil {
		w.dirty = true
		return err
	}
	return nil
}

// Run flushes pending changes every interval until ctx is done.
func (w *SyncWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Flush(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Failed to mirror ledger, will retry",
					log.FieldError, err,
					log.FieldDuration, w.interval)
			}
		}
	}
}

func (w *SyncWorker) syncLocked(ctx context.Context) error {
	started := w.now()

	st, err := w.repo.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		w.logger.InfoContext(ctx, "No stored ledger yet, mirroring empty ledger")
		st = core.NewState()
	case err != nil:
		return fmt.Errorf("load ledger: %w", err)
	}

	if err := w.mirror.Mirror(ctx, st); err != nil {
		return fmt.Errorf("mirror ledger: %w", err)
	}

	w.dirty = false
	w.lastSynced = started
	w.logger.InfoContext(ctx, "Successfully mirrored ledger",
		log.FieldOperation, log.OpSync,
		"transactions", len(st.Transactions),
		"budgets", len(st.Budgets),
		log.FieldDuration, w.now().Sub(started))
	return nil
}
