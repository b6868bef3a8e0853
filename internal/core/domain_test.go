package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 17)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-17"` {
		t.Fatalf("unexpected json %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("expected %v, got %v", d, back)
	}
	if err := json.Unmarshal([]byte(`"17/01/2024"`), &back); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestDateOfTruncates(t *testing.T) {
	d := DateOf(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC))
	if d.String() != "2024-03-09" {
		t.Fatalf("unexpected date %s", d)
	}
}

func TestTransactionInputValidate(t *testing.T) {
	good := TransactionInput{
		Amount:      Units(-5000),
		Category:    "Food",
		Date:        NewDate(2024, 1, 2),
		Description: "groceries",
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		in   TransactionInput
		want error
	}{
		{"bad type", TransactionInput{Amount: Units(1), Category: "c", Date: NewDate(2024, 1, 1), Type: "transfer"}, ErrInvalidType},
		{"empty category", TransactionInput{Amount: Units(1), Category: " ", Date: NewDate(2024, 1, 1), Type: Income}, ErrEmptyCategory},
		{"zero amount", TransactionInput{Category: "c", Date: NewDate(2024, 1, 1), Type: Income}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.in.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	zeroDate := good
	zeroDate.Date = Date{}
	if err := zeroDate.Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Budgets = append(s.Budgets, Budget{Category: "Food", MonthlyLimit: Units(100)})
	c := s.Clone()
	c.Budgets[0].Spent = Units(50)
	if !s.Budgets[0].Spent.IsZero() {
		t.Fatalf("clone shares budget storage with original")
	}
}

func TestPatchApply(t *testing.T) {
	tx := Transaction{ID: 7, Amount: Units(-10), Category: "Food", Type: Expense}
	got := TransactionPatch{Amount: Ptr(Units(-20)), Description: Ptr("lunch")}.Apply(tx)
	if got.ID != 7 || got.Amount != Units(-20) || got.Category != "Food" || got.Description != "lunch" {
		t.Fatalf("unexpected patched transaction %+v", got)
	}

	s := SettingsPatch{Notifications: Ptr(false)}.Apply(DefaultSettings())
	if s.Notifications || s.Currency != "RWF" {
		t.Fatalf("unexpected settings %+v", s)
	}
}
