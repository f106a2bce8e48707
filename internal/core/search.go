package core

import "strings"

// FilterTransactions returns the subset of transactions whose description or
// category contains the query as a case-insensitive substring. An empty
// query matches everything. Input order is preserved and the input slice is
// never mutated.
func FilterTransactions(transactions []Transaction, query string) []Transaction {
	if query == "" {
		return transactions
	}
	q := strings.ToLower(query)
	out := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.Description), q) ||
			strings.Contains(strings.ToLower(string(tx.Category)), q) {
			out = append(out, tx)
		}
	}
	return out
}
