package report

import (
	"testing"
	"time"

	"budgetbook/internal/core"
)

func TestMonthlyReportSeeded(t *testing.T) {
	r := MonthlyReport(seeded(), 2024, time.January)
	if r.TransactionCount != 25 {
		t.Fatalf("expected 25 transactions, got %d", r.TransactionCount)
	}
	if r.TotalIncome != core.Units(1225000) || r.TotalExpenses != core.Units(-800000) {
		t.Fatalf("unexpected totals income=%s expenses=%s", r.TotalIncome, r.TotalExpenses)
	}
	if r.NetSavings != r.TotalIncome.Add(r.TotalExpenses) {
		t.Fatalf("net savings %s is not income plus expenses", r.NetSavings)
	}

	var sum core.Money
	var pct float64
	for i, b := range r.CategoryBreakdown {
		sum = sum.Add(b.Amount)
		pct += b.Percentage
		if i > 0 && b.Amount.Cents > r.CategoryBreakdown[i-1].Amount.Cents {
			t.Fatalf("breakdown not sorted descending at %d", i)
		}
	}
	if sum != r.TotalExpenses.Abs() {
		t.Fatalf("breakdown sums to %s, want %s", sum, r.TotalExpenses.Abs())
	}
	if !approx(pct, 100) {
		t.Fatalf("breakdown percentages sum to %v", pct)
	}
	if len(r.CategoryBreakdown) != 8 {
		t.Fatalf("expected 8 expense categories, got %d", len(r.CategoryBreakdown))
	}
	first := r.CategoryBreakdown[0]
	if first.Category != "Bills" || first.TransactionCount != 3 {
		t.Fatalf("unexpected first entry %+v", first)
	}
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	r := MonthlyReport(seeded(), 2024, time.February)
	if r.TransactionCount != 0 || !r.NetSavings.IsZero() || len(r.CategoryBreakdown) != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}

func TestYearlyOverview(t *testing.T) {
	txs := append(seeded(), core.Transaction{
		ID: 99, Amount: core.Units(500), Category: "Salary", Date: core.NewDate(2023, 12, 31), Type: core.Income,
	})
	o := YearlyOverview(txs, 2024)
	if o.TotalIncome != core.Units(1225000) || o.TotalExpenses != core.Units(-800000) || o.NetSavings != core.Units(425000) {
		t.Fatalf("unexpected overview %+v", o)
	}
	if prev := YearlyOverview(txs, 2023); prev.TotalIncome != core.Units(500) {
		t.Fatalf("unexpected 2023 overview %+v", prev)
	}
}

func TestTopExpenses(t *testing.T) {
	top := TopExpenses(seeded(), 3)
	want := []core.Money{core.Units(-200000), core.Units(-120000), core.Units(-80000)}
	for i, w := range want {
		if top[i].Amount != w || !top[i].IsExpense() {
			t.Fatalf("position %d: got %+v", i, top[i])
		}
	}
	if all := TopExpenses(seeded(), 100); len(all) != 22 {
		t.Fatalf("expected 22 expenses, got %d", len(all))
	}
}

func TestSavingsRate(t *testing.T) {
	got := SavingsRate(seeded(), jan2024)
	want := 425000.0 / 1225000.0 * 100
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
	if r := SavingsRate(seeded(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); r != 0 {
		t.Fatalf("expected 0 for a year without income, got %v", r)
	}
	onlyExpense := []core.Transaction{{ID: 1, Amount: core.Units(-10), Category: "Food", Date: core.DateOf(jan2024), Type: core.Expense}}
	if r := SavingsRate(onlyExpense, jan2024); r != 0 {
		t.Fatalf("expected 0 without income, got %v", r)
	}
}
