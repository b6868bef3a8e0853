// Package ledger owns the ledger state and every mutation applied to it.
//
// A Store holds the transactions, budgets, categories and settings of one
// ledger. Mutations keep budget spent totals in step with recorded
// expenses, save the whole state through the configured repository and
// announce the change to the configured notifier. Queries delegate to
// package report, evaluated against the store's clock.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"budgetbook/internal/cache"
	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/seed"
	"budgetbook/internal/storage"
)

// Notifier receives a change event after each persisted mutation.
type Notifier interface {
	PublishChange(ctx context.Context, ev core.ChangeEvent) error
}

type Store struct {
	mu      sync.Mutex
	state   core.State
	lastID  int64
	version uint64 // bumped by every mutation; keys the report memo

	monthly *cache.LRUCache[core.MonthlyReport]
	yearly  *cache.LRUCache[core.YearlyOverview]

	now      func() time.Time
	repo     storage.Repository
	notifier Notifier
	logger   *log.Logger
	seed     seed.Set
}

type Option func(*Store)

// WithClock replaces time.Now. It decides "the current month" and seeds IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithRepository(repo storage.Repository) Option {
	return func(s *Store) { s.repo = repo }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSeed replaces the data Initialize inserts.
func WithSeed(set seed.Set) Option {
	return func(s *Store) { s.seed = set }
}

// New returns a store holding a copy of state.
func New(state core.State, opts ...Option) *Store {
	s := &Store{
		state:  state.Clone(),
		now:    time.Now,
		logger: log.Default(log.ComponentLedger),
		seed:   seed.Default(),

		monthly: cache.NewLRUCache[core.MonthlyReport](reportCacheSize, 0),
		yearly:  cache.NewLRUCache[core.YearlyOverview](reportCacheSize, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.state.Transactions {
		s.lastID = max(s.lastID, t.ID)
	}
	return s
}

// Open hydrates a store from repo, which also becomes its repository. Any
// load failure yields an empty ledger with default settings; a partially
// read state is never used.
func Open(ctx context.Context, repo storage.Repository, opts ...Option) *Store {
	opts = append([]Option{WithRepository(repo)}, opts...)
	state, err := repo.Load(ctx)
	if err != nil {
		s := New(core.NewState(), opts...)
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.InfoContext(ctx, "No stored ledger, starting empty")
		} else {
			s.logger.WarnContext(ctx, "Failed to load ledger, starting empty", log.FieldError, err)
		}
		return s
	}
	s := New(state, opts...)
	s.logger.InfoContext(ctx, "Ledger loaded",
		"transactions", len(state.Transactions),
		"budgets", len(state.Budgets),
		"categories", len(state.Categories))
	return s
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Transactions returns a copy, most recently added first.
func (s *Store) Transactions() []core.Transaction {
	return s.Snapshot().Transactions
}

func (s *Store) Budgets() []core.Budget {
	return s.Snapshot().Budgets
}

func (s *Store) Categories() []core.Category {
	return s.Snapshot().Categories
}

func (s *Store) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// commitLocked saves the state. The caller holds s.mu.
func (s *Store) commitLocked(ctx context.Context, ev core.ChangeEvent) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.state); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save ledger", changeFields(ev).WithError(err).ToSlice()...)
		return err
	}
	return nil
}

// publish is best-effort: the state is already saved.
func (s *Store) publish(ctx context.Context, ev core.ChangeEvent) {
	s.logger.DebugContext(ctx, "Ledger changed", changeFields(ev).ToSlice()...)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishChange(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish change", changeFields(ev).WithError(err).ToSlice()...)
	}
}

// apply runs fn under the lock and, if fn changed something, saves and
// publishes ev. fn may fill in ev.Key.
func (s *Store) apply(ctx context.Context, ev *core.ChangeEvent, fn func() (bool, error)) error {
	s.mu.Lock()
	changed, err := fn()
	if changed {
		s.version++
	}
	if err == nil && changed {
		err = s.commitLocked(ctx, *ev)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if !changed {
		s.logger.DebugContext(ctx, "Nothing to change", changeFields(*ev).ToSlice()...)
		return nil
	}
	s.publish(ctx, *ev)
	return nil
}

func changeFields(ev core.ChangeEvent) log.LogFields {
	return log.NewFields().WithChange(ev.Entity, ev.Operation, ev.Key)
}

// nextIDLocked returns the clock in milliseconds, bumped past the last ID
// when the clock has not advanced.
func (s *Store) nextIDLocked() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}
