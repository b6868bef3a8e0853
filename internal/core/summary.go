package core

import "time"

// FallbackColor is used for categories without a category record.
const FallbackColor = "#6B7280"

// BudgetStatus classifies a budget by how much of its limit is spent.
type BudgetStatus string

const (
	StatusUnder BudgetStatus = "under"
	StatusNear  BudgetStatus = "near"
	StatusOver  BudgetStatus = "over"
)

// MonthStats reports the current month with expenses as a positive total.
type MonthStats struct {
	TotalIncome   Money
	TotalExpenses Money // absolute value, never negative
	NetBalance    Money
}

// CategoryShare is one slice of the top-categories breakdown.
type CategoryShare struct {
	Name       string
	Amount     Money
	Percentage float64
	Color      string
}

type SavingsProgress struct {
	Saved      Money
	Goal       Money
	Percentage float64
}

// CategoryBreakdown is one expense category within a monthly report.
type CategoryBreakdown struct {
	Category         string
	Amount           Money // absolute value
	Percentage       float64
	TransactionCount int
}

// MonthlyReport keeps expenses in their stored negative sign.
type MonthlyReport struct {
	Year              int
	Month             time.Month
	TotalIncome       Money
	TotalExpenses     Money // negative or zero
	NetSavings        Money
	TransactionCount  int
	CategoryBreakdown []CategoryBreakdown
}

// YearlyOverview uses the same signed convention as MonthlyReport.
type YearlyOverview struct {
	Year          int
	TotalIncome   Money
	TotalExpenses Money
	NetSavings    Money
}

// BudgetSummary aggregates every budget for the month in progress.
type BudgetSummary struct {
	TotalLimit    Money
	TotalSpent    Money
	Remaining     Money
	DaysRemaining int
	Under         int
	Near          int
	Over          int
}

// CategoryComparison is the spending of one category this month and last.
type CategoryComparison struct {
	Category  string
	ThisMonth Money
	LastMonth Money
}

// MonthPoint is one month of a trend series. Expenses are absolute.
type MonthPoint struct {
	Year        int
	Month       time.Month
	Income      Money
	Expenses    Money
	SavingsRate float64 // clamped at 0
}

// ChangeEvent describes a mutation applied to the ledger.
type ChangeEvent struct {
	Entity    string
	Operation string
	Key       string
}

// Entities named in change events.
const (
	EntityTransaction = "transaction"
	EntityBudget      = "budget"
	EntityCategory    = "category"
	EntitySettings    = "settings"
	EntityLedger      = "ledger"
)
