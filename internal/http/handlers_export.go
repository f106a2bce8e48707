package http

import (
	"net/http"
	"time"

	"ledgerlite/internal/core"
	applog "ledgerlite/internal/log"
)

// handleExport streams every transaction as a CSV download. With nothing to
// export it answers 204 and the page stays put.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions for export",
			"error", err,
			applog.FieldOperation, applog.OpExport)
		http.Error(w, "export unavailable", http.StatusInternalServerError)
		return
	}
	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	csv := core.ExportCSV(transactions)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+core.ExportFilename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
