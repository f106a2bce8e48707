package http

import (
	"net/http"
	"time"

	"ledgerlite/internal/ledger"
	applog "ledgerlite/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	// A failed load leaves the lists empty; the page still renders and the
	// user may retry by reloading.
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", "error", err)
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list goals", "error", err)
	}

	summary := buildSummary(transactions)
	balance := coreBalance(transactions)

	data := struct {
		Theme        string
		Today        string
		Summary      summaryView
		Goals        []goalRow
		Transactions []transactionRow
		HasRecords   bool
		Query        string
	}{
		Theme:        s.currentTheme(ctx),
		Today:        time.Now().Format("2006-01-02"),
		Summary:      summary,
		Goals:        buildGoalRows(goals, balance),
		Transactions: buildTransactionRows(transactions),
		HasRecords:   len(transactions) > 0,
		Query:        "",
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(ctx, "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary renders the balance/income/expense partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Error loading summary</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary.html", buildSummary(transactions)); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
	}
}

// handleThemeToggle flips the persisted theme preference and returns the new
// value. The theme is cosmetic; a store failure logs and keeps the old one.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	theme := s.currentTheme(ctx)
	next := ledger.ThemeLight
	if theme == ledger.ThemeLight {
		next = ledger.ThemeDark
	}
	if err := s.store.SetPreference(ctx, ledger.PrefTheme, next); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist theme", "error", err, "theme", next)
		next = theme
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(next))
}
