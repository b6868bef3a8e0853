package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/report"
)

// Tab names appended to the configured prefix.
const (
	TabTransactions = "Transactions"
	TabBudgets      = "Budgets"
	TabCategories   = "Categories"
	TabSettings     = "Settings"
)

// Tab is one worksheet of the mirror, header row first.
type Tab struct {
	Title string
	Rows  [][]any
}

// TabTitle joins prefix and name, e.g. "Ledger Budgets".
func TabTitle(prefix, name string) string {
	return strings.TrimSpace(prefix + " " + name)
}

// BuildTabs renders the whole ledger as worksheet contents.
func BuildTabs(prefix string, s core.State) []Tab {
	return []Tab{
		{Title: TabTitle(prefix, TabTransactions), Rows: transactionRows(s.Transactions)},
		{Title: TabTitle(prefix, TabBudgets), Rows: budgetRows(s.Budgets)},
		{Title: TabTitle(prefix, TabCategories), Rows: categoryRows(s.Categories)},
		{Title: TabTitle(prefix, TabSettings), Rows: settingsRows(s.Settings)},
	}
}

func transactionRows(txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"ID", "Date", "Type", "Category", "Description", "Amount"})
	for _, tx := range txs {
		rows = append(rows, []any{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.String(),
			tx.Type.String(),
			tx.Category,
			tx.Description,
			tx.Amount.String(),
		})
	}
	return rows
}

func budgetRows(budgets []core.Budget) [][]any {
	rows := make([][]any, 0, len(budgets)+1)
	rows = append(rows, []any{"Category", "Monthly Limit", "Spent", "Remaining", "Used %", "Status", "Color"})
	for _, b := range budgets {
		rows = append(rows, []any{
			b.Category,
			b.MonthlyLimit.String(),
			b.Spent.String(),
			b.MonthlyLimit.Sub(b.Spent).String(),
			fmt.Sprintf("%.1f", b.Spent.Ratio(b.MonthlyLimit)),
			string(report.Classify(b.Spent, b.MonthlyLimit)),
			b.Color,
		})
	}
	return rows
}

func categoryRows(cats []core.Category) [][]any {
	rows := make([][]any, 0, len(cats)+1)
	rows = append(rows, []any{"Name", "Type", "Color", "Icon"})
	for _, c := range cats {
		rows = append(rows, []any{c.Name, c.Type.String(), c.Color, c.Icon})
	}
	return rows
}

func settingsRows(s core.Settings) [][]any {
	return [][]any{
		{"Setting", "Value"},
		{"User", s.UserName},
		{"Currency", s.Currency},
		{"Monthly Budget Limit", s.MonthlyBudgetLimit.String()},
		{"Notifications", strconv.FormatBool(s.Notifications)},
	}
}
