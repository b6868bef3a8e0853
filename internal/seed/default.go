// Package seed holds the data a fresh ledger is populated with.
package seed

import "budgetbook/internal/core"

// Set is one complete seeding sequence: categories first, then sample
// transactions, then budgets.
type Set struct {
	Categories   []core.Category
	Transactions []core.TransactionInput
	Budgets      []core.BudgetInput
}

// Default returns the built-in seed: 11 categories, 25 sample transactions
// dated January 2024 and 8 expense budgets.
func Default() Set {
	return Set{
		Categories:   defaultCategories(),
		Transactions: sampleTransactions(),
		Budgets:      defaultBudgets(),
	}
}

func defaultCategories() []core.Category {
	return []core.Category{
		{Name: "Salary", Type: core.Income, Color: "#10B981", Icon: "DollarSign"},
		{Name: "Freelance", Type: core.Income, Color: "#059669", Icon: "Briefcase"},
		{Name: "Investment", Type: core.Income, Color: "#047857", Icon: "TrendingUp"},
		{Name: "Food", Type: core.Expense, Color: "#EF4444", Icon: "Utensils"},
		{Name: "Transport", Type: core.Expense, Color: "#F97316", Icon: "Car"},
		{Name: "Entertainment", Type: core.Expense, Color: "#8B5CF6", Icon: "Gamepad2"},
		{Name: "Shopping", Type: core.Expense, Color: "#EC4899", Icon: "ShoppingBag"},
		{Name: "Bills", Type: core.Expense, Color: "#6B7280", Icon: "Home"},
		{Name: "Healthcare", Type: core.Expense, Color: "#DC2626", Icon: "Heart"},
		{Name: "Education", Type: core.Expense, Color: "#2563EB", Icon: "GraduationCap"},
		{Name: "Travel", Type: core.Expense, Color: "#0891B2", Icon: "Plane"},
	}
}

func sampleTransactions() []core.TransactionInput {
	in := func(amount int64, category string, day int, desc string) core.TransactionInput {
		typ := core.Expense
		if amount > 0 {
			typ = core.Income
		}
		return core.TransactionInput{
			Amount:      core.Units(amount),
			Category:    category,
			Date:        core.NewDate(2024, 1, day),
			Description: desc,
			Type:        typ,
		}
	}
	return []core.TransactionInput{
		in(1000000, "Salary", 1, "Monthly salary"),
		in(150000, "Freelance", 15, "Consulting project"),
		in(-80000, "Food", 2, "Monthly groceries"),
		in(-25000, "Transport", 3, "Fuel and maintenance"),
		in(-15000, "Entertainment", 4, "Movies and dining"),
		in(-45000, "Shopping", 5, "Clothing and accessories"),
		in(-200000, "Bills", 6, "Rent payment"),
		in(-30000, "Healthcare", 7, "Medical checkup"),
		in(-50000, "Education", 8, "Professional course"),
		in(-120000, "Travel", 9, "Weekend getaway"),
		in(-12000, "Food", 10, "Restaurant dinner"),
		in(-8000, "Transport", 11, "Taxi rides"),
		in(-5000, "Entertainment", 12, "Netflix subscription"),
		in(-35000, "Shopping", 13, "Electronics purchase"),
		in(-18000, "Bills", 14, "Utilities (water, electricity)"),
		in(75000, "Investment", 16, "Investment returns"),
		in(-40000, "Food", 17, "Weekly groceries"),
		in(-10000, "Transport", 18, "Public transport"),
		in(-20000, "Entertainment", 19, "Concert tickets"),
		in(-15000, "Healthcare", 20, "Pharmacy purchases"),
		in(-25000, "Food", 21, "Special occasion meal"),
		in(-7000, "Transport", 22, "Moto taxi"),
		in(-12000, "Shopping", 23, "Personal care items"),
		in(-6000, "Entertainment", 24, "Coffee shop"),
		in(-22000, "Bills", 25, "Internet and phone"),
	}
}

func defaultBudgets() []core.BudgetInput {
	return []core.BudgetInput{
		{Category: "Food", MonthlyLimit: core.Units(150000), Color: "#EF4444"},
		{Category: "Transport", MonthlyLimit: core.Units(80000), Color: "#F97316"},
		{Category: "Entertainment", MonthlyLimit: core.Units(50000), Color: "#8B5CF6"},
		{Category: "Shopping", MonthlyLimit: core.Units(100000), Color: "#EC4899"},
		{Category: "Bills", MonthlyLimit: core.Units(250000), Color: "#6B7280"},
		{Category: "Healthcare", MonthlyLimit: core.Units(60000), Color: "#DC2626"},
		{Category: "Education", MonthlyLimit: core.Units(80000), Color: "#2563EB"},
		{Category: "Travel", MonthlyLimit: core.Units(150000), Color: "#0891B2"},
	}
}
