package report

import (
	"slices"
	"time"

	"budgetbook/internal/core"
)

// BudgetSummary totals every budget and counts them by status. Days
// remaining excludes today.
func BudgetSummary(budgets []core.Budget, now time.Time) core.BudgetSummary {
	var s core.BudgetSummary
	for _, b := range budgets {
		s.TotalLimit = s.TotalLimit.Add(b.MonthlyLimit)
		s.TotalSpent = s.TotalSpent.Add(b.Spent)
		switch Classify(b.Spent, b.MonthlyLimit) {
		case core.StatusOver:
			s.Over++
		case core.StatusNear:
			s.Near++
		default:
			s.Under++
		}
	}
	s.Remaining = s.TotalLimit.Sub(s.TotalSpent)
	s.DaysRemaining = daysIn(now.Year(), now.Month()) - now.Day()
	return s
}

// CategoryComparison reports each expense category's spending this month
// against last month. Categories with nothing in either month are omitted.
func CategoryComparison(txs []core.Transaction, cats []core.Category, now time.Time) []core.CategoryComparison {
	prev := firstOfMonth(now).AddDate(0, -1, 0)
	this, _ := expenseTotals(txs, func(t core.Transaction) bool {
		return t.In(now.Year(), now.Month())
	})
	last, _ := expenseTotals(txs, func(t core.Transaction) bool {
		return t.In(prev.Year(), prev.Month())
	})

	var out []core.CategoryComparison
	for _, c := range cats {
		if c.Type != core.Expense {
			continue
		}
		cmp := core.CategoryComparison{
			Category:  c.Name,
			ThisMonth: this[c.Name].amount,
			LastMonth: last[c.Name].amount,
		}
		if cmp.ThisMonth.IsZero() && cmp.LastMonth.IsZero() {
			continue
		}
		out = append(out, cmp)
	}
	return out
}

// MonthlyTrend returns the last months calendar months up to and including
// the one containing now, oldest first.
func MonthlyTrend(txs []core.Transaction, now time.Time, months int) []core.MonthPoint {
	start := firstOfMonth(now)
	out := make([]core.MonthPoint, 0, max(months, 0))
	for i := months - 1; i >= 0; i-- {
		m := start.AddDate(0, -i, 0)
		out = append(out, monthPoint(txs, m.Year(), m.Month()))
	}
	return out
}

// YearlyTrend returns one point per month of year, January first.
func YearlyTrend(txs []core.Transaction, year int) []core.MonthPoint {
	out := make([]core.MonthPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, monthPoint(txs, year, m))
	}
	return out
}

// Years lists the distinct years that have transactions, latest first.
func Years(txs []core.Transaction) []int {
	var years []int
	for _, t := range txs {
		if y := t.Date.Year(); !slices.Contains(years, y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

func monthPoint(txs []core.Transaction, year int, month time.Month) core.MonthPoint {
	p := core.MonthPoint{Year: year, Month: month}
	for _, t := range txs {
		if !t.In(year, month) {
			continue
		}
		switch t.Type {
		case core.Income:
			p.Income = p.Income.Add(t.Amount)
		case core.Expense:
			p.Expenses = p.Expenses.Add(t.Amount.Abs())
		}
	}
	if p.Income.Cents > 0 {
		p.SavingsRate = max(p.Income.Sub(p.Expenses).Ratio(p.Income), 0)
	}
	return p
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
