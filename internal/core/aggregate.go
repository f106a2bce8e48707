package core

// Totals is the derived breakdown of a transaction set.
type Totals struct {
	Income  Money
	Expense Money
}

// Balance is total income minus total expense.
func (t Totals) Balance() Money {
	return Money{Cents: t.Income.Cents - t.Expense.Cents}
}

// Aggregate sums income and expense amounts over the full transaction set in
// a single pass. An empty set yields zero totals. Aggregation does not
// re-validate amounts; that is a data-entry concern.
func Aggregate(transactions []Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case Income:
			t.Income.Cents += tx.Amount.Cents
		case Expense:
			t.Expense.Cents += tx.Amount.Cents
		}
	}
	return t
}
