package report

import (
	"testing"
	"time"

	"budgetbook/internal/core"
	"budgetbook/internal/seed"
)

func seededBudgets() []core.Budget {
	spent := map[string]int64{
		"Food": 157000, "Transport": 50000, "Entertainment": 46000, "Shopping": 92000,
		"Bills": 240000, "Healthcare": 45000, "Education": 50000, "Travel": 120000,
	}
	var out []core.Budget
	for _, in := range seed.Default().Budgets {
		out = append(out, core.Budget{
			Category:     in.Category,
			MonthlyLimit: in.MonthlyLimit,
			Spent:        core.Units(spent[in.Category]),
			Color:        in.Color,
		})
	}
	return out
}

func TestBudgetSummary(t *testing.T) {
	s := BudgetSummary(seededBudgets(), jan2024)
	if s.TotalLimit != core.Units(920000) || s.TotalSpent != core.Units(800000) || s.Remaining != core.Units(120000) {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.Over != 1 || s.Near != 4 || s.Under != 3 {
		t.Fatalf("unexpected status counts over=%d near=%d under=%d", s.Over, s.Near, s.Under)
	}
	if s.DaysRemaining != 3 {
		t.Fatalf("expected 3 days remaining, got %d", s.DaysRemaining)
	}
	leap := BudgetSummary(nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	if leap.DaysRemaining != 28 {
		t.Fatalf("expected 28 days remaining on 1 Feb 2024, got %d", leap.DaysRemaining)
	}
}

func TestCategoryComparison(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	txs := append(seeded(), core.Transaction{
		ID: 100, Amount: core.Units(-9000), Category: "Food", Date: core.NewDate(2024, 2, 3), Type: core.Expense,
	})
	got := CategoryComparison(txs, seed.Default().Categories, feb)
	if len(got) != 8 {
		t.Fatalf("expected 8 expense categories, got %d", len(got))
	}
	if got[0].Category != "Food" || got[0].ThisMonth != core.Units(9000) || got[0].LastMonth != core.Units(157000) {
		t.Fatalf("unexpected Food comparison %+v", got[0])
	}

	none := CategoryComparison(seeded(), seed.Default().Categories, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if len(none) != 0 {
		t.Fatalf("expected no comparisons, got %+v", none)
	}
}

func TestCategoryComparisonAcrossYearBoundary(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Amount: core.Units(-40), Category: "Food", Date: core.NewDate(2023, 12, 20), Type: core.Expense},
	}
	cats := []core.Category{{Name: "Food", Type: core.Expense}}
	got := CategoryComparison(txs, cats, jan2024)
	if len(got) != 1 || got[0].LastMonth != core.Units(40) || !got[0].ThisMonth.IsZero() {
		t.Fatalf("unexpected comparison %+v", got)
	}
}

func TestMonthlyTrend(t *testing.T) {
	txs := append(seeded(), core.Transaction{
		ID: 100, Amount: core.Units(-50000), Category: "Food", Date: core.NewDate(2023, 12, 5), Type: core.Expense,
	})
	pts := MonthlyTrend(txs, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 3)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0].Year != 2023 || pts[0].Month != time.December || pts[2].Month != time.February {
		t.Fatalf("unexpected range %+v .. %+v", pts[0], pts[2])
	}
	if pts[0].SavingsRate != 0 || pts[0].Expenses != core.Units(50000) {
		t.Fatalf("expected clamped rate for an expense-only month, got %+v", pts[0])
	}
	jan := pts[1]
	if jan.Income != core.Units(1225000) || jan.Expenses != core.Units(800000) || !approx(jan.SavingsRate, 425000.0/1225000.0*100) {
		t.Fatalf("unexpected January point %+v", jan)
	}
}

func TestMonthlyTrendClampsNegativeRate(t *testing.T) {
	d := core.DateOf(jan2024)
	txs := []core.Transaction{
		{ID: 1, Amount: core.Units(100), Category: "Salary", Date: d, Type: core.Income},
		{ID: 2, Amount: core.Units(-300), Category: "Food", Date: d, Type: core.Expense},
	}
	pts := MonthlyTrend(txs, jan2024, 1)
	if len(pts) != 1 || pts[0].SavingsRate != 0 {
		t.Fatalf("expected clamped rate, got %+v", pts)
	}
}

func TestYearlyTrend(t *testing.T) {
	pts := YearlyTrend(seeded(), 2024)
	if len(pts) != 12 {
		t.Fatalf("expected 12 points, got %d", len(pts))
	}
	if pts[0].Income != core.Units(1225000) {
		t.Fatalf("unexpected January income %s", pts[0].Income)
	}
	for _, p := range pts[1:] {
		if !p.Income.IsZero() || !p.Expenses.IsZero() {
			t.Fatalf("expected empty month, got %+v", p)
		}
	}
}

func TestYears(t *testing.T) {
	txs := append(seeded(),
		core.Transaction{ID: 100, Amount: core.Units(1), Category: "Salary", Date: core.NewDate(2022, 5, 1), Type: core.Income},
		core.Transaction{ID: 101, Amount: core.Units(1), Category: "Salary", Date: core.NewDate(2023, 5, 1), Type: core.Income},
	)
	got := Years(txs)
	want := []int{2024, 2023, 2022}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
