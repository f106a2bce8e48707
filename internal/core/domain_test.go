package core

import (
	"testing"
	"time"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -50}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("category %q should be valid", c)
		}
	}
	if Category("Groceries").Valid() {
		t.Fatalf("unknown category should be invalid")
	}
	if Category("food").Valid() {
		t.Fatalf("category matching is case-sensitive")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Description: "Coffee",
		Amount:      Money{Cents: 5000},
		Category:    CategoryFood,
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Description: "", Amount: Money{Cents: 1}, Category: CategoryFood, Date: good.Date, Type: Expense},
		{Description: "  ", Amount: Money{Cents: 1}, Category: CategoryFood, Date: good.Date, Type: Expense},
		{Description: "a", Amount: Money{Cents: 0}, Category: CategoryFood, Date: good.Date, Type: Expense},
		{Description: "a", Amount: Money{Cents: 1}, Category: "Nope", Date: good.Date, Type: Expense},
		{Description: "a", Amount: Money{Cents: 1}, Category: CategoryFood, Date: time.Time{}, Type: Expense},
		{Description: "a", Amount: Money{Cents: 1}, Category: CategoryFood, Date: good.Date, Type: "transfer"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSavingGoalValidate(t *testing.T) {
	good := SavingGoal{Name: "Vacation", Target: Money{Cents: 100000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		g    SavingGoal
		want error
	}{
		{SavingGoal{Name: "", Target: Money{Cents: 1}}, ErrEmptyName},
		{SavingGoal{Name: "a", Target: Money{Cents: 0}}, ErrInvalidTarget},
		{SavingGoal{Name: "a", Target: Money{Cents: -100}}, ErrInvalidTarget},
	}
	for i, tc := range cases {
		if err := tc.g.Validate(); err != tc.want {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
