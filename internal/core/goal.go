package core

// GoalProgress computes a goal's completion percentage, balance divided by
// target, clamped to [0,100] for display: a negative balance never renders
// as negative width and over-achievement never exceeds 100. A non-positive
// target yields 0; stores reject such goals at creation, this guard keeps
// the division safe regardless.
func GoalProgress(balance, target Money) float64 {
	if target.Cents <= 0 {
		return 0
	}
	progress := float64(balance.Cents) / float64(target.Cents) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// GoalAchieved reports whether the clamped progress reached 100, which holds
// exactly when balance >= target.
func GoalAchieved(balance, target Money) bool {
	return GoalProgress(balance, target) >= 100
}
