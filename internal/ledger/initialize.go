package ledger

import (
	"context"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
)

// Operations specific to the ledger, alongside the log.Op* names.
const (
	OpInitialize = "initialize"
	OpRefresh    = "refresh"
)

// Initialize seeds an empty ledger: categories, then the sample
// transactions one at a time through the add path, then budgets. It does
// nothing once the ledger holds any transaction.
func (s *Store) Initialize(ctx context.Context) error {
	ev := core.ChangeEvent{Entity: core.EntityLedger, Operation: OpInitialize}
	var added struct{ categories, transactions, budgets int }
	err := s.apply(ctx, &ev, func() (bool, error) {
		if len(s.state.Transactions) > 0 {
			return false, nil
		}
		for _, c := range s.seed.Categories {
			if s.addCategoryLocked(c) == nil {
				added.categories++
			}
		}
		for _, in := range s.seed.Transactions {
			s.addTransactionLocked(in)
			added.transactions++
		}
		for _, in := range s.seed.Budgets {
			if _, err := s.addBudgetLocked(in); err == nil {
				added.budgets++
			}
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	if added.transactions > 0 || added.categories > 0 || added.budgets > 0 {
		s.logger.InfoContext(ctx, "Ledger seeded",
			log.FieldOperation, OpInitialize,
			"categories", added.categories,
			"transactions", added.transactions,
			"budgets", added.budgets)
	}
	return nil
}
