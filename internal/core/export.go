package core

import (
	"encoding/csv"
	"strings"
	"time"
)

// CSV column order is fixed: Date,Description,Category,Type,Amount.
var exportHeader = []string{"Date", "Description", "Category", "Type", "Amount"}

// ExportCSV serializes the transaction set (expected date-descending) as a
// comma-separated table. Dates carry no time component and amounts are plain
// numbers without currency symbols. An empty set produces only the header.
// Fields containing delimiters or quotes are escaped per RFC 4180.
func ExportCSV(transactions []Transaction) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(exportHeader)
	for _, tx := range transactions {
		_ = w.Write([]string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			string(tx.Category),
			string(tx.Type),
			tx.Amount.Plain(),
		})
	}
	w.Flush()
	return b.String()
}

// ExportFilename builds the suggested download name for an export taken at
// the given time, e.g. "ledger-lite-export-2026-08-31.csv".
func ExportFilename(now time.Time) string {
	return "ledger-lite-export-" + now.Format("2006-01-02") + ".csv"
}
