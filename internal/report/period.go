package report

import (
	"slices"
	"time"

	"budgetbook/internal/core"
)

// MonthlyReport rolls up one calendar month. Unlike CurrentMonthStats the
// expense total keeps its stored negative sign and is added to income.
func MonthlyReport(txs []core.Transaction, year int, month time.Month) core.MonthlyReport {
	r := core.MonthlyReport{Year: year, Month: month}
	in := func(t core.Transaction) bool { return t.In(year, month) }

	for _, t := range txs {
		if !in(t) {
			continue
		}
		r.TransactionCount++
		switch t.Type {
		case core.Income:
			r.TotalIncome = r.TotalIncome.Add(t.Amount)
		case core.Expense:
			r.TotalExpenses = r.TotalExpenses.Add(t.Amount)
		}
	}
	r.NetSavings = r.TotalIncome.Add(r.TotalExpenses)

	totals, order := expenseTotals(txs, in)
	var absTotal core.Money
	for _, name := range order {
		absTotal = absTotal.Add(totals[name].amount)
	}
	r.CategoryBreakdown = make([]core.CategoryBreakdown, 0, len(order))
	for _, name := range order {
		ct := totals[name]
		r.CategoryBreakdown = append(r.CategoryBreakdown, core.CategoryBreakdown{
			Category:         name,
			Amount:           ct.amount,
			Percentage:       ct.amount.Ratio(absTotal),
			TransactionCount: ct.count,
		})
	}
	slices.SortStableFunc(r.CategoryBreakdown, func(a, b core.CategoryBreakdown) int {
		return cmpDesc(a.Amount, b.Amount)
	})
	return r
}

// YearlyOverview rolls up one calendar year with the signed convention of
// MonthlyReport.
func YearlyOverview(txs []core.Transaction, year int) core.YearlyOverview {
	o := core.YearlyOverview{Year: year}
	for _, t := range txs {
		if t.Date.Year() != year {
			continue
		}
		switch t.Type {
		case core.Income:
			o.TotalIncome = o.TotalIncome.Add(t.Amount)
		case core.Expense:
			o.TotalExpenses = o.TotalExpenses.Add(t.Amount)
		}
	}
	o.NetSavings = o.TotalIncome.Add(o.TotalExpenses)
	return o
}

// TopExpenses returns up to limit expenses by absolute amount, largest first.
func TopExpenses(txs []core.Transaction, limit int) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return cmpDesc(a.Amount.Abs(), b.Amount.Abs())
	})
	return head(out, limit)
}

// SavingsRate is the share of this year's income that was not spent, as a
// percentage. It may be negative.
func SavingsRate(txs []core.Transaction, now time.Time) float64 {
	o := YearlyOverview(txs, now.Year())
	if o.TotalIncome.IsZero() {
		return 0
	}
	return o.NetSavings.Ratio(o.TotalIncome)
}
