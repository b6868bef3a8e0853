package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the calendar-date format used for persistence and seed data.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID          int64           `json:"id"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
	}

	// TransactionInput is a Transaction before the store assigns its ID.
	TransactionInput struct {
		Amount      Money
		Category    string
		Date        Date
		Description string
		Type        TransactionType
	}

	Budget struct {
		Category     string `json:"category"`
		MonthlyLimit Money  `json:"monthlyLimit"`
		Spent        Money  `json:"spent"`
		Color        string `json:"color"`
	}

	// BudgetInput is a Budget before the store computes its spent total.
	BudgetInput struct {
		Category     string
		MonthlyLimit Money
		Color        string
	}

	Category struct {
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color"`
		Icon  string          `json:"icon"`
	}

	Settings struct {
		UserName           string `json:"userName"`
		Currency           string `json:"currency"`
		MonthlyBudgetLimit Money  `json:"monthlyBudgetLimit"` // also the monthly savings goal
		Notifications      bool   `json:"notifications"`
	}

	// State is everything the ledger owns, persisted as one unit.
	State struct {
		Transactions []Transaction `json:"transactions"`
		Budgets      []Budget      `json:"budgets"`
		Categories   []Category    `json:"categories"`
		Settings     Settings      `json:"settings"`
	}
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category")
	ErrBelowMinimum   = errors.New("amount below minimum")
	ErrBudgetExists   = errors.New("budget already exists for category")
	ErrCategoryExists = errors.New("category already exists")
)

// DefaultSettings returns the settings of a fresh ledger.
func DefaultSettings() Settings {
	return Settings{
		UserName:           "Noella",
		Currency:           "RWF",
		MonthlyBudgetLimit: Units(1000000),
		Notifications:      true,
	}
}

// NewState returns an empty ledger with default settings.
func NewState() State {
	return State{
		Transactions: []Transaction{},
		Budgets:      []Budget{},
		Categories:   []Category{},
		Settings:     DefaultSettings(),
	}
}

// Clone returns a deep copy; the collections of the copy share no backing arrays.
func (s State) Clone() State {
	return State{
		Transactions: append([]Transaction{}, s.Transactions...),
		Budgets:      append([]Budget{}, s.Budgets...),
		Categories:   append([]Category{}, s.Categories...),
		Settings:     s.Settings,
	}
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string {
	return string(t)
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// IsIncome reports whether the transaction is an income.
func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// In reports whether the transaction date falls in the given calendar month.
func (t Transaction) In(year int, month time.Month) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}

// FindCategory returns the category with the given name.
func (s State) FindCategory(name string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// FindBudget returns the first budget for the given category.
func (s State) FindBudget(category string) (Budget, bool) {
	for _, b := range s.Budgets {
		if b.Category == category {
			return b, true
		}
	}
	return Budget{}, false
}

// Validate checks the shape of a transaction as entered by a user.
// The ledger store itself never calls it.
func (in TransactionInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if err := in.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	if in.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (in BudgetInput) Validate() error {
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	if err := in.MonthlyLimit.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Month returns the calendar month.
func (d Date) Month() time.Month {
	return d.Time.Month()
}

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
