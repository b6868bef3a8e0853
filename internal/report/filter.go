package report

import (
	"cmp"
	"slices"
	"strings"

	"budgetbook/internal/core"
)

// SortField names the transaction attribute a listing is ordered by.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByCategory    SortField = "category"
	SortByDescription SortField = "description"
)

// TransactionFilter narrows and orders a transaction listing. Empty
// Category or Type match everything; the zero value sorts by date, newest
// first.
type TransactionFilter struct {
	Search    string
	Category  string
	Type      core.TransactionType
	SortBy    SortField
	Ascending bool
}

// Filter applies f to txs and returns a new slice.
func Filter(txs []core.Transaction, f TransactionFilter) []core.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}

	compare := compareBy(f.SortBy)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		if f.Ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

// compareBy orders amounts by their signed value, so descending puts
// income before expenses.
func compareBy(field SortField) func(a, b core.Transaction) int {
	switch field {
	case SortByAmount:
		return func(a, b core.Transaction) int { return cmp.Compare(a.Amount.Cents, b.Amount.Cents) }
	case SortByCategory:
		return func(a, b core.Transaction) int { return strings.Compare(a.Category, b.Category) }
	case SortByDescription:
		return func(a, b core.Transaction) int { return strings.Compare(a.Description, b.Description) }
	default:
		return func(a, b core.Transaction) int { return a.Date.Compare(b.Date.Time) }
	}
}
