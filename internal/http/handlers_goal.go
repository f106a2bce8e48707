package http

import (
	"net/http"

	"ledgerlite/internal/core"
	applog "ledgerlite/internal/log"
)

// handleCreateGoal adds a saving goal. Unlike transaction writes, a failed
// goal save is surfaced to the user so they know the target was not recorded.
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
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

	cents, err := core.ParseDecimalToCents(sanitizeInput(r.FormValue("target")))
	if err != nil {
		s.logger.DebugContext(ctx, "Goal rejected", "error", err, applog.FieldAmount, r.FormValue("target"))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	goal := core.SavingGoal{
		Name:   sanitizeInput(r.FormValue("name")),
		Target: core.Money{Cents: cents},
	}
	if err := goal.Validate(); err != nil {
		s.logger.DebugContext(ctx, "Goal rejected", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if _, err := s.store.InsertGoal(ctx, goal); err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert goal",
			"error", err,
			applog.FieldOperation, applog.OpCreate)
		s.renderGoalError(w, r)
		return
	}

	w.Header().Set("HX-Trigger", "ledger-changed")
	w.WriteHeader(http.StatusNoContent)
}

// renderGoalError returns a visible alert partial in place of the goal list.
func (s *Server) renderGoalError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("HX-Retarget", "#goal-alert")
	w.WriteHeader(http.StatusInternalServerError)
	if err := s.templates.ExecuteTemplate(w, "goal_error.html", nil); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "goal_error.html")
	}
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete goal",
			"error", err,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldRecordID, id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Trigger", "ledger-changed")
	w.WriteHeader(http.StatusNoContent)
}

// handleGoals renders the goal list partial with progress measured against
// the current balance.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ctx := r.Context()
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list goals", "error", err, applog.FieldOperation, applog.OpList)
		_, _ = w.Write([]byte(`<div id="goals" class="placeholder">Error loading goals</div>`))
		return
	}
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", "error", err, applog.FieldOperation, applog.OpList)
		_, _ = w.Write([]byte(`<div id="goals" class="placeholder">Error loading goals</div>`))
		return
	}

	data := struct {
		Goals []goalRow
	}{
		Goals: buildGoalRows(goals, coreBalance(transactions)),
	}
	if err := s.templates.ExecuteTemplate(w, "goals.html", data); err != nil {
		s.logger.ErrorContext(ctx, "Template execution error", "error", err, "template", "goals.html")
	}
}
