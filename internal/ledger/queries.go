package ledger

import (
	"fmt"
	"slices"
	"time"

	"budgetbook/internal/cache"
	"budgetbook/internal/core"
	"budgetbook/internal/report"
)

// Query methods copy the state under the lock and compute outside it.

// reportCacheSize bounds each memo of clock-independent period reports.
const reportCacheSize = 36

func (s *Store) CurrentMonthStats() core.MonthStats {
	return report.CurrentMonthStats(s.Transactions(), s.now())
}

func (s *Store) TopCategories() []core.CategoryShare {
	st := s.Snapshot()
	return report.TopCategories(st.Transactions, st.Categories, s.now())
}

func (s *Store) RecentTransactions(limit int) []core.Transaction {
	return report.RecentTransactions(s.Transactions(), limit)
}

func (s *Store) SavingsGoalProgress() core.SavingsProgress {
	st := s.Snapshot()
	return report.SavingsGoalProgress(st.Transactions, st.Settings, s.now())
}

func (s *Store) BudgetStatus(category string) core.BudgetStatus {
	return report.BudgetStatus(s.Budgets(), category)
}

func (s *Store) MonthlyReport(year int, month time.Month) core.MonthlyReport {
	r := memo(s, s.monthly, fmt.Sprintf("%04d-%02d", year, int(month)), func(txs []core.Transaction) core.MonthlyReport {
		return report.MonthlyReport(txs, year, month)
	})
	r.CategoryBreakdown = slices.Clone(r.CategoryBreakdown)
	return r
}

func (s *Store) YearlyOverview(year int) core.YearlyOverview {
	return memo(s, s.yearly, fmt.Sprintf("%04d", year), func(txs []core.Transaction) core.YearlyOverview {
		return report.YearlyOverview(txs, year)
	})
}

func (s *Store) TopExpenses(limit int) []core.Transaction {
	return report.TopExpenses(s.Transactions(), limit)
}

func (s *Store) SavingsRate() float64 {
	return report.SavingsRate(s.Transactions(), s.now())
}

func (s *Store) BudgetSummary() core.BudgetSummary {
	return report.BudgetSummary(s.Budgets(), s.now())
}

func (s *Store) CategoryComparison() []core.CategoryComparison {
	st := s.Snapshot()
	return report.CategoryComparison(st.Transactions, st.Categories, s.now())
}

// MonthlyTrend covers the last months months, oldest first.
func (s *Store) MonthlyTrend(months int) []core.MonthPoint {
	return report.MonthlyTrend(s.Transactions(), s.now(), months)
}

func (s *Store) YearlyTrend(year int) []core.MonthPoint {
	return report.YearlyTrend(s.Transactions(), year)
}

func (s *Store) Years() []int {
	return report.Years(s.Transactions())
}

func (s *Store) Filter(f report.TransactionFilter) []core.Transaction {
	return report.Filter(s.Transactions(), f)
}

// memo serves a report from c when the ledger has not changed since it was
// computed. Entries of older versions are never read again and age out.
func memo[T any](s *Store, c *cache.LRUCache[T], name string, compute func([]core.Transaction) T) T {
	s.mu.Lock()
	key := fmt.Sprintf("v%d/%s", s.version, name)
	v, ok := c.Get(key)
	var txs []core.Transaction
	if !ok {
		txs = slices.Clone(s.state.Transactions)
	}
	s.mu.Unlock()

	if !ok {
		v = compute(txs)
		c.Set(key, v)
	}
	return v
}
