package seed

import (
	"fmt"
	"os"

	"budgetbook/internal/core"

	"gopkg.in/yaml.v3"
)

type fileCategory struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// fileTransaction amounts are decimal strings in major units; the sign is
// derived from the type.
type fileTransaction struct {
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
}

type fileBudget struct {
	Category     string `yaml:"category"`
	MonthlyLimit string `yaml:"monthly_limit"`
	Color        string `yaml:"color"`
}

type seedFile struct {
	Categories   []fileCategory    `yaml:"categories"`
	Transactions []fileTransaction `yaml:"transactions"`
	Budgets      []fileBudget      `yaml:"budgets"`
}

// Load reads a YAML seed file. Sections that are absent fall back to the
// built-in defaults.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML.
func Parse(data []byte) (Set, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	set := Default()
	if f.Categories != nil {
		set.Categories = make([]core.Category, 0, len(f.Categories))
		for i, c := range f.Categories {
			cat := core.Category{Name: c.Name, Type: core.TransactionType(c.Type), Color: c.Color, Icon: c.Icon}
			if err := cat.Validate(); err != nil {
				return Set{}, fmt.Errorf("category %d: %w", i, err)
			}
			set.Categories = append(set.Categories, cat)
		}
	}
	if f.Transactions != nil {
		set.Transactions = make([]core.TransactionInput, 0, len(f.Transactions))
		for i, t := range f.Transactions {
			in, err := t.input()
			if err != nil {
				return Set{}, fmt.Errorf("transaction %d: %w", i, err)
			}
			set.Transactions = append(set.Transactions, in)
		}
	}
	if f.Budgets != nil {
		set.Budgets = make([]core.BudgetInput, 0, len(f.Budgets))
		for i, b := range f.Budgets {
			cents, err := core.ParseDecimalToCents(b.MonthlyLimit)
			if err != nil {
				return Set{}, fmt.Errorf("budget %d: %w", i, err)
			}
			in := core.BudgetInput{Category: b.Category, MonthlyLimit: core.Money{Cents: cents}, Color: b.Color}
			if err := in.Validate(); err != nil {
				return Set{}, fmt.Errorf("budget %d: %w", i, err)
			}
			set.Budgets = append(set.Budgets, in)
		}
	}
	return set, nil
}

func (t fileTransaction) input() (core.TransactionInput, error) {
	typ := core.TransactionType(t.Type)
	amount, err := core.ParseAmount(t.Amount, typ)
	if err != nil {
		return core.TransactionInput{}, err
	}
	date, err := core.ParseDate(t.Date)
	if err != nil {
		return core.TransactionInput{}, fmt.Errorf("invalid date %q: %w", t.Date, err)
	}
	in := core.TransactionInput{
		Amount:      amount,
		Category:    t.Category,
		Date:        date,
		Description: t.Description,
		Type:        typ,
	}
	return in, in.Validate()
}
