package ledger

import (
	"context"
	"slices"
	"strconv"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
)

// AddTransaction records in with a fresh ID at the front of the ledger.
// An expense adds its absolute amount to the spent total of the budget for
// its category, whatever its date. No validation happens here.
func (s *Store) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var tx core.Transaction
	ev := core.ChangeEvent{Entity: core.EntityTransaction, Operation: log.OpCreate}
	err := s.apply(ctx, &ev, func() (bool, error) {
		tx = s.addTransactionLocked(in)
		ev.Key = strconv.FormatInt(tx.ID, 10)
		return true, nil
	})
	if err != nil {
		return tx, err
	}
	s.logger.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		log.FieldCategory, tx.Category,
		log.FieldAmountCents, tx.Amount.Cents)
	return tx, nil
}

func (s *Store) addTransactionLocked(in core.TransactionInput) core.Transaction {
	tx := core.Transaction{
		ID:          s.nextIDLocked(),
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
		Type:        in.Type,
	}
	s.state.Transactions = slices.Insert(s.state.Transactions, 0, tx)

	if tx.IsExpense() {
		for i := range s.state.Budgets {
			if s.state.Budgets[i].Category == tx.Category {
				s.state.Budgets[i].Spent = s.state.Budgets[i].Spent.Add(tx.Amount.Abs())
			}
		}
	}
	return tx
}

// UpdateTransaction merges patch into the transaction with id. Budget spent
// totals are left as they are. Unknown ids are ignored.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) error {
	ev := core.ChangeEvent{Entity: core.EntityTransaction, Operation: log.OpUpdate, Key: strconv.FormatInt(id, 10)}
	return s.apply(ctx, &ev, func() (bool, error) {
		i := s.indexOfTransaction(id)
		if i < 0 {
			return false, nil
		}
		s.state.Transactions[i] = patch.Apply(s.state.Transactions[i])
		return true, nil
	})
}

// DeleteTransaction removes the transaction with id. Budget spent totals are
// not rolled back. Unknown ids are ignored.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	ev := core.ChangeEvent{Entity: core.EntityTransaction, Operation: log.OpDelete, Key: strconv.FormatInt(id, 10)}
	return s.apply(ctx, &ev, func() (bool, error) {
		i := s.indexOfTransaction(id)
		if i < 0 {
			return false, nil
		}
		s.state.Transactions = slices.Delete(s.state.Transactions, i, i+1)
		return true, nil
	})
}

func (s *Store) indexOfTransaction(id int64) int {
	return slices.IndexFunc(s.state.Transactions, func(t core.Transaction) bool {
		return t.ID == id
	})
}
