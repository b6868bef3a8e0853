// Package report computes the derived ledger views. Every function is a
// pure read over the collections it is given and an explicit "now".
package report

import (
	"slices"
	"time"

	"budgetbook/internal/core"
)

// Thresholds for budget classification, as percentages of the limit.
const (
	NearThreshold = 80
	OverThreshold = 100
)

// TopCategoriesLimit is how many categories TopCategories returns.
const TopCategoriesLimit = 3

// CurrentMonthStats totals the calendar month containing now. Expenses are
// reported as a positive amount and subtracted.
func CurrentMonthStats(txs []core.Transaction, now time.Time) core.MonthStats {
	var st core.MonthStats
	for _, t := range txs {
		if !t.In(now.Year(), now.Month()) {
			continue
		}
		switch t.Type {
		case core.Income:
			st.TotalIncome = st.TotalIncome.Add(t.Amount)
		case core.Expense:
			st.TotalExpenses = st.TotalExpenses.Add(t.Amount.Abs())
		}
	}
	st.NetBalance = st.TotalIncome.Sub(st.TotalExpenses)
	return st
}

// TopCategories returns the three largest expense categories of the
// current month, largest first.
func TopCategories(txs []core.Transaction, cats []core.Category, now time.Time) []core.CategoryShare {
	totals, order := expenseTotals(txs, func(t core.Transaction) bool {
		return t.In(now.Year(), now.Month())
	})

	var total core.Money
	for _, name := range order {
		total = total.Add(totals[name].amount)
	}

	shares := make([]core.CategoryShare, 0, len(order))
	for _, name := range order {
		amount := totals[name].amount
		shares = append(shares, core.CategoryShare{
			Name:       name,
			Amount:     amount,
			Percentage: amount.Ratio(total),
			Color:      colorOf(cats, name),
		})
	}
	slices.SortStableFunc(shares, func(a, b core.CategoryShare) int {
		return cmpDesc(a.Amount, b.Amount)
	})
	if len(shares) > TopCategoriesLimit {
		shares = shares[:TopCategoriesLimit]
	}
	return shares
}

// RecentTransactions returns up to limit transactions, newest date first.
// Transactions sharing a date keep their collection order.
func RecentTransactions(txs []core.Transaction, limit int) []core.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
	return head(out, limit)
}

// SavingsGoalProgress compares this month's net balance with the monthly
// goal from settings. Percentage is capped at 100.
func SavingsGoalProgress(txs []core.Transaction, settings core.Settings, now time.Time) core.SavingsProgress {
	net := CurrentMonthStats(txs, now).NetBalance
	p := core.SavingsProgress{
		Saved: net.Max(core.Money{}),
		Goal:  settings.MonthlyBudgetLimit,
	}
	if p.Goal.Cents > 0 {
		p.Percentage = min(p.Saved.Ratio(p.Goal), 100)
	}
	return p
}

// BudgetStatus classifies the first budget for category. A category
// without a budget is under.
func BudgetStatus(budgets []core.Budget, category string) core.BudgetStatus {
	for _, b := range budgets {
		if b.Category == category {
			return Classify(b.Spent, b.MonthlyLimit)
		}
	}
	return core.StatusUnder
}

// Classify maps spent/limit onto under (<80%), near (80-99%) or over.
// A zero limit is over as soon as anything is spent. A negative limit
// flips the comparisons, so a positive spend against it is under.
func Classify(spent, limit core.Money) core.BudgetStatus {
	if limit.Cents == 0 {
		if spent.Cents > 0 {
			return core.StatusOver
		}
		return core.StatusUnder
	}
	atLeast := func(threshold int64) bool {
		if limit.Cents < 0 {
			return spent.Cents*100 <= limit.Cents*threshold
		}
		return spent.Cents*100 >= limit.Cents*threshold
	}
	switch {
	case atLeast(OverThreshold):
		return core.StatusOver
	case atLeast(NearThreshold):
		return core.StatusNear
	default:
		return core.StatusUnder
	}
}

type categoryTotal struct {
	amount core.Money
	count  int
}

// expenseTotals sums absolute expense amounts per category over the
// transactions accepted by keep. order lists categories by first appearance.
func expenseTotals(txs []core.Transaction, keep func(core.Transaction) bool) (map[string]categoryTotal, []string) {
	totals := make(map[string]categoryTotal)
	var order []string
	for _, t := range txs {
		if !t.IsExpense() || !keep(t) {
			continue
		}
		ct, seen := totals[t.Category]
		if !seen {
			order = append(order, t.Category)
		}
		ct.amount = ct.amount.Add(t.Amount.Abs())
		ct.count++
		totals[t.Category] = ct
	}
	return totals, order
}

func colorOf(cats []core.Category, name string) string {
	for _, c := range cats {
		if c.Name == name {
			return c.Color
		}
	}
	return core.FallbackColor
}

func cmpDesc(a, b core.Money) int {
	switch {
	case a.Cents > b.Cents:
		return -1
	case a.Cents < b.Cents:
		return 1
	}
	return 0
}

func head[T any](s []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
