package http

import (
	"net/http"
	"time"

	"ledgerlite/internal/core"
	applog "ledgerlite/internal/log"
)

// handleCreateTransaction records a new income or expense from the entry form.
// Invalid input is dropped without an error response so a stray submit never
// disturbs the ledger.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx := r.Context()

	cents, err := core.ParseDecimalToCents(sanitizeInput(r.FormValue("amount")))
	if err != nil {
		s.logger.DebugContext(ctx, "Transaction rejected", "error", err, applog.FieldAmount, r.FormValue("amount"))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	date := time.Now()
	if raw := sanitizeInput(r.FormValue("date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			s.logger.DebugContext(ctx, "Transaction rejected", "error", core.ErrInvalidDate, "date", raw)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		date = parsed
	}

	transaction := core.Transaction{
		Description: sanitizeInput(r.FormValue("description")),
		Amount:      core.Money{Cents: cents},
		Category:    core.Category(sanitizeInput(r.FormValue("category"))),
		Type:        core.TransactionType(sanitizeInput(r.FormValue("type"))),
		Date:        date,
	}
	if err := transaction.Validate(); err != nil {
		s.logger.DebugContext(ctx, "Transaction rejected", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if _, err := s.store.InsertTransaction(ctx, transaction); err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert transaction",
			"error", err,
			applog.FieldOperation, applog.OpCreate,
			applog.FieldCategory, string(transaction.Category))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Trigger", "ledger-changed")
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteTransaction removes a transaction by id. Deleting an id that no
// longer exists is treated as already done.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id := sanitizeInput(r.FormValue("id"))
	if id == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete transaction",
			"error", err,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldRecordID, id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Trigger", "ledger-changed")
	w.WriteHeader(http.StatusNoContent)
}

// handleTransactions renders the transaction list partial, optionally
// filtered by the q parameter.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ctx := r.Context()
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", "error", err, applog.FieldOperation, applog.OpList)
		_, _ = w.Write([]byte(`<div id="transactions" class="placeholder">Error loading transactions</div>`))
		return
	}

	query := sanitizeInput(r.URL.Query().Get("q"))
	filtered := core.FilterTransactions(transactions, query)

	data := struct {
		Transactions []transactionRow
		HasRecords   bool
		Query        string
	}{
		Transactions: buildTransactionRows(filtered),
		HasRecords:   len(transactions) > 0,
		Query:        query,
	}
	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		s.logger.ErrorContext(ctx, "Template execution error", "error", err, "template", "transactions.html")
	}
}
