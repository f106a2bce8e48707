package core

import "testing"

func TestGoalProgressScenario(t *testing.T) {
	target := Money{Cents: 100000}
	cases := []struct {
		balance  int64
		progress float64
		achieved bool
	}{
		{95000, 95, false},
		{100000, 100, true},
		{120000, 100, true}, // clamped, still achieved
		{0, 0, false},
		{-5000, 0, false}, // negative balance clamps to zero
	}
	for i, tc := range cases {
		got := GoalProgress(Money{Cents: tc.balance}, target)
		if got != tc.progress {
			t.Fatalf("case %d: expected progress %v, got %v", i, tc.progress, got)
		}
		if GoalAchieved(Money{Cents: tc.balance}, target) != tc.achieved {
			t.Fatalf("case %d: expected achieved=%v", i, tc.achieved)
		}
	}
}

func TestGoalProgressClamped(t *testing.T) {
	target := Money{Cents: 1000}
	for _, balance := range []int64{-1 << 40, -1, 0, 1, 500, 999, 1000, 1001, 1 << 40} {
		p := GoalProgress(Money{Cents: balance}, target)
		if p < 0 || p > 100 {
			t.Fatalf("balance %d: progress %v out of [0,100]", balance, p)
		}
	}
}

func TestGoalProgressMonotone(t *testing.T) {
	target := Money{Cents: 123456}
	prev := -1.0
	for balance := int64(-2000); balance <= 200000; balance += 7919 {
		p := GoalProgress(Money{Cents: balance}, target)
		if p < prev {
			t.Fatalf("progress decreased at balance %d: %v < %v", balance, p, prev)
		}
		prev = p
	}
}

func TestGoalProgressNonPositiveTarget(t *testing.T) {
	// stores reject these goals at creation; the calculator still must not
	// divide by zero when handed one
	if p := GoalProgress(Money{Cents: 5000}, Money{Cents: 0}); p != 0 {
		t.Fatalf("zero target: expected 0, got %v", p)
	}
	if p := GoalProgress(Money{Cents: 5000}, Money{Cents: -100}); p != 0 {
		t.Fatalf("negative target: expected 0, got %v", p)
	}
	if GoalAchieved(Money{Cents: 5000}, Money{Cents: 0}) {
		t.Fatalf("zero target should never be achieved")
	}
}
