package core

import (
	"testing"
	"time"
)

func searchFixture() []Transaction {
	d := func(day int) time.Time { return time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC) }
	return []Transaction{
		tx("Coffee", 450, Expense, CategoryFood, d(3)),
		tx("Food delivery", 2200, Expense, CategoryFood, d(2)),
		tx("Salary", 100000, Income, CategorySalary, d(1)),
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	set := searchFixture()
	got := FilterTransactions(set, "")
	if len(got) != len(set) {
		t.Fatalf("empty query should match all, got %d of %d", len(got), len(set))
	}
	for i := range set {
		if got[i].Description != set[i].Description {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterByDescriptionAndCategory(t *testing.T) {
	set := searchFixture()
	cases := []struct {
		query string
		want  []string
	}{
		// "foo" matches "Food delivery" twice over (description and
		// category "Food") but "Coffee" only via its category
		{"foo", []string{"Coffee", "Food delivery"}},
		{"FOO", []string{"Coffee", "Food delivery"}},
		{"coffee", []string{"Coffee"}},
		{"salary", []string{"Salary"}},
		{"deliv", []string{"Food delivery"}},
		{"zzz", nil},
	}
	for _, tc := range cases {
		got := FilterTransactions(set, tc.query)
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: expected %d matches, got %d", tc.query, len(tc.want), len(got))
		}
		for i, d := range tc.want {
			if got[i].Description != d {
				t.Fatalf("query %q: expected %q at %d, got %q", tc.query, d, i, got[i].Description)
			}
		}
	}
}

func TestFilterIdempotentAndSubset(t *testing.T) {
	set := searchFixture()
	once := FilterTransactions(set, "foo")
	twice := FilterTransactions(once, "foo")
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d", len(once), len(twice))
	}
	if len(once) > len(set) {
		t.Fatalf("filter result larger than input")
	}
	// input untouched
	if set[0].Description != "Coffee" || len(set) != 3 {
		t.Fatalf("input mutated by filter")
	}
}
