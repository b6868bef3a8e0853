package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"budgetbook/internal/core"
)

func TestDefaultShape(t *testing.T) {
	s := Default()
	if len(s.Categories) != 11 || len(s.Transactions) != 25 || len(s.Budgets) != 8 {
		t.Fatalf("unexpected sizes: %d categories, %d transactions, %d budgets",
			len(s.Categories), len(s.Transactions), len(s.Budgets))
	}

	var income, expense int
	for _, c := range s.Categories {
		switch c.Type {
		case core.Income:
			income++
		case core.Expense:
			expense++
		}
	}
	if income != 3 || expense != 8 {
		t.Fatalf("expected 3 income and 8 expense categories, got %d/%d", income, expense)
	}

	for i, tx := range s.Transactions {
		if err := tx.Validate(); err != nil {
			t.Fatalf("transaction %d invalid: %v", i, err)
		}
		if tx.Amount.IsNegative() != (tx.Type == core.Expense) {
			t.Fatalf("transaction %d sign disagrees with type", i)
		}
		if tx.Date.Year() != 2024 || tx.Date.Month() != 1 {
			t.Fatalf("transaction %d outside January 2024: %s", i, tx.Date)
		}
	}

	var food core.Money
	for _, tx := range s.Transactions {
		if tx.Category == "Food" {
			food = food.Add(tx.Amount.Abs())
		}
	}
	if food != core.Units(157000) {
		t.Fatalf("expected Food total 157000, got %s", food)
	}
}

func TestParseOverridesSections(t *testing.T) {
	data := []byte(`
budgets:
  - category: Food
    monthly_limit: "200000"
    color: "#EF4444"
transactions:
  - amount: "2500.50"
    category: Food
    date: "2024-02-03"
    description: Market
    type: expense
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(s.Categories) != 11 {
		t.Fatalf("categories should fall back to defaults, got %d", len(s.Categories))
	}
	if len(s.Budgets) != 1 || s.Budgets[0].MonthlyLimit != core.Units(200000) {
		t.Fatalf("unexpected budgets %+v", s.Budgets)
	}
	if len(s.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(s.Transactions))
	}
	tx := s.Transactions[0]
	if tx.Amount.Cents != -250050 || tx.Date.String() != "2024-02-03" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"bad type", "transactions:\n  - {amount: \"1\", category: Food, date: \"2024-01-01\", type: gift}\n", core.ErrInvalidType},
		{"bad amount", "budgets:\n  - {category: Food, monthly_limit: \"abc\"}\n", core.ErrInvalidAmount},
		{"empty category", "categories:\n  - {name: \"\", type: income}\n", core.ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  - {name: Gifts, type: income, color: \"#000000\", icon: Gift}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Categories) != 1 || s.Categories[0].Name != "Gifts" {
		t.Fatalf("unexpected categories %+v", s.Categories)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
