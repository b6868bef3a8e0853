// Package scheduler runs the monthly budget rollover on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"budgetbook/internal/log"
)

// Refresher recomputes every budget's spent total for the current month.
type Refresher interface {
	RefreshBudgets(ctx context.Context) error
}

// Rollover refreshes budgets when a new month starts, so spent totals
// cached during the previous month are reset.
type Rollover struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *log.Logger
	spec      string

	mu  sync.Mutex
	ctx context.Context
}

// NewRollover validates spec (standard five-field cron or a descriptor
// such as "@monthly") and registers the refresh job.
func NewRollover(spec string, refresher Refresher, logger *log.Logger) (*Rollover, error) {
	if logger == nil {
		logger = log.Default(log.ComponentScheduler)
	}
	r := &Rollover{
		cron:      cron.New(),
		refresher: refresher,
		logger:    logger.WithComponent(log.ComponentScheduler),
		spec:      spec,
		ctx:       context.Background(),
	}
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start runs the schedule in the background. Jobs use ctx for their calls.
func (r *Rollover) Start(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()
	r.cron.Start()
	r.logger.InfoContext(ctx, "Budget rollover scheduled",
		log.FieldSchedule, r.spec,
		"next", r.Next().Format(time.RFC3339))
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Rollover) Stop() {
	<-r.cron.Stop().Done()
}

// Next returns the next scheduled run, or the zero time before Start.
func (r *Rollover) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunOnce refreshes budgets immediately.
func (r *Rollover) RunOnce(ctx context.Context) error {
	started := time.Now()
	if err := r.refresher.RefreshBudgets(ctx); err != nil {
		return fmt.Errorf("refresh budgets: %w", err)
	}
	r.logger.InfoContext(ctx, "Budget rollover completed", log.FieldDuration, time.Since(started))
	return nil
}

func (r *Rollover) tick() {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if err := r.RunOnce(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Budget rollover failed", log.FieldError, err)
	}
}
