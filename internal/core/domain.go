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

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
	CategorySalary        Category = "Salary"
	CategoryFreelance     Category = "Freelance"
)

type (
	TransactionType string

	Category string

	Money struct {
		Cents int64
	}

	// Transaction is a single dated monetary event, either income or expense.
	// Immutable once created; ID and CreatedAt are assigned by the store.
	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
		Date        time.Time
		Type        TransactionType
		CreatedAt   time.Time
	}

	// SavingGoal is a named target amount tracked against the overall balance.
	SavingGoal struct {
		ID        string
		Name      string
		Target    Money
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTarget    = errors.New("target amount must be positive")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealth,
		CategoryOther,
		CategorySalary,
		CategoryFreelance,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryShopping,
		CategoryHealth, CategoryOther, CategorySalary, CategoryFreelance:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate rejects non-positive targets at creation time so goal progress
// never divides by zero downstream.
func (g SavingGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if len(g.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidTarget
	}
	return nil
}
