package ledger

import (
	"context"
	"fmt"
	"slices"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
)

// AddBudget creates a budget whose spent total starts as the absolute sum of
// this month's expenses in its category. A second budget for the same
// category is rejected with core.ErrBudgetExists.
func (s *Store) AddBudget(ctx context.Context, in core.BudgetInput) (core.Budget, error) {
	var b core.Budget
	ev := core.ChangeEvent{Entity: core.EntityBudget, Operation: log.OpCreate, Key: in.Category}
	err := s.apply(ctx, &ev, func() (bool, error) {
		var err error
		b, err = s.addBudgetLocked(in)
		return err == nil, err
	})
	return b, err
}

func (s *Store) addBudgetLocked(in core.BudgetInput) (core.Budget, error) {
	if s.indexOfBudget(in.Category) >= 0 {
		return core.Budget{}, fmt.Errorf("%w: %s", core.ErrBudgetExists, in.Category)
	}
	b := core.Budget{
		Category:     in.Category,
		MonthlyLimit: in.MonthlyLimit,
		Spent:        s.monthSpentLocked(in.Category),
		Color:        in.Color,
	}
	s.state.Budgets = append(s.state.Budgets, b)
	return b, nil
}

// UpdateBudget merges patch into the budget for category. Unknown
// categories are ignored. Renaming onto another budget's category is
// rejected with core.ErrBudgetExists.
func (s *Store) UpdateBudget(ctx context.Context, category string, patch core.BudgetPatch) error {
	ev := core.ChangeEvent{Entity: core.EntityBudget, Operation: log.OpUpdate, Key: category}
	return s.apply(ctx, &ev, func() (bool, error) {
		i := s.indexOfBudget(category)
		if i < 0 {
			return false, nil
		}
		if patch.Category != nil && *patch.Category != category && s.indexOfBudget(*patch.Category) >= 0 {
			return false, fmt.Errorf("%w: %s", core.ErrBudgetExists, *patch.Category)
		}
		s.state.Budgets[i] = patch.Apply(s.state.Budgets[i])
		return true, nil
	})
}

// RefreshBudgets recomputes every spent total from this month's expenses.
// Ordinary mutations never do this; it exists for the monthly rollover.
func (s *Store) RefreshBudgets(ctx context.Context) error {
	ev := core.ChangeEvent{Entity: core.EntityBudget, Operation: OpRefresh}
	err := s.apply(ctx, &ev, func() (bool, error) {
		for i := range s.state.Budgets {
			s.state.Budgets[i].Spent = s.monthSpentLocked(s.state.Budgets[i].Category)
		}
		return len(s.state.Budgets) > 0, nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budgets refreshed", log.FieldMonth, s.now().Format("2006-01"))
	return nil
}

// monthSpentLocked sums absolute expense amounts for category in the
// current calendar month.
func (s *Store) monthSpentLocked(category string) core.Money {
	now := s.now()
	var spent core.Money
	for _, t := range s.state.Transactions {
		if t.IsExpense() && t.Category == category && t.In(now.Year(), now.Month()) {
			spent = spent.Add(t.Amount.Abs())
		}
	}
	return spent
}

func (s *Store) indexOfBudget(category string) int {
	return slices.IndexFunc(s.state.Budgets, func(b core.Budget) bool {
		return b.Category == category
	})
}
