package core

// Patch types carry partial updates; a nil field leaves the target unchanged.
type (
	TransactionPatch struct {
		Amount      *Money
		Category    *string
		Date        *Date
		Description *string
		Type        *TransactionType
	}

	BudgetPatch struct {
		Category     *string
		MonthlyLimit *Money
		Spent        *Money
		Color        *string
	}

	CategoryPatch struct {
		Name  *string
		Type  *TransactionType
		Color *string
		Icon  *string
	}

	SettingsPatch struct {
		UserName           *string
		Currency           *string
		MonthlyBudgetLimit *Money
		Notifications      *bool
	}
)

// Apply merges the patch into t. The ID is never touched.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	return t
}

func (p BudgetPatch) Apply(b Budget) Budget {
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.MonthlyLimit != nil {
		b.MonthlyLimit = *p.MonthlyLimit
	}
	if p.Spent != nil {
		b.Spent = *p.Spent
	}
	if p.Color != nil {
		b.Color = *p.Color
	}
	return b
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.UserName != nil {
		s.UserName = *p.UserName
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.MonthlyBudgetLimit != nil {
		s.MonthlyBudgetLimit = *p.MonthlyBudgetLimit
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	return s
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
