package http

import (
	"context"
	"html/template"
	"strconv"
	"strings"
	"time"

	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
)

// View models handed to templates.
type (
	summaryView struct {
		Balance  string
		Income   string
		Expense  string
		Negative bool
	}

	transactionRow struct {
		ID          string
		Date        string
		Description string
		Category    string
		Type        string
		Amount      string
		IsIncome    bool
	}

	goalRow struct {
		ID       string
		Name     string
		Target   string
		Progress string
		Width    int
		Achieved bool
	}
)

func buildSummary(transactions []core.Transaction) summaryView {
	totals := core.Aggregate(transactions)
	balance := totals.Balance()
	return summaryView{
		Balance:  formatAmount(balance),
		Income:   formatAmount(totals.Income),
		Expense:  formatAmount(totals.Expense),
		Negative: balance.Cents < 0,
	}
}

func buildTransactionRows(transactions []core.Transaction) []transactionRow {
	rows := make([]transactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, transactionRow{
			ID:          t.ID,
			Date:        t.Date.Format("2006-01-02"),
			Description: t.Description,
			Category:    string(t.Category),
			Type:        string(t.Type),
			Amount:      formatAmount(t.Amount),
			IsIncome:    t.Type == core.Income,
		})
	}
	return rows
}

func buildGoalRows(goals []core.SavingGoal, balance core.Money) []goalRow {
	rows := make([]goalRow, 0, len(goals))
	for _, g := range goals {
		progress := core.GoalProgress(balance, g.Target)
		rows = append(rows, goalRow{
			ID:       g.ID,
			Name:     g.Name,
			Target:   formatAmount(g.Target),
			Progress: strconv.FormatFloat(progress, 'f', 0, 64),
			Width:    int(progress),
			Achieved: core.GoalAchieved(balance, g.Target),
		})
	}
	return rows
}

func coreBalance(transactions []core.Transaction) core.Money {
	return core.Aggregate(transactions).Balance()
}

// formatAmount renders a money value for the UI, e.g. "$12.34".
func formatAmount(m core.Money) string {
	if m.Cents < 0 {
		return "-$" + core.Money{Cents: -m.Cents}.Plain()
	}
	return "$" + m.Plain()
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"categories": core.Categories,
	}
}

// currentTheme reads the persisted theme, defaulting to dark when the
// preference is absent or the store read fails.
func (s *Server) currentTheme(ctx context.Context) string {
	theme, err := s.store.GetPreference(ctx, ledger.PrefTheme)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read theme preference", "error", err)
		return ledger.DefaultTheme
	}
	if theme != ledger.ThemeLight && theme != ledger.ThemeDark {
		return ledger.DefaultTheme
	}
	return theme
}
