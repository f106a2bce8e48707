package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
	"ledgerlite/internal/ledger/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewServer(":0", store, nil), store
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCreateTransaction(t *testing.T) {
	s, store := newTestServer(t)

	rec := postForm(t, s, "/transactions", url.Values{
		"description": {"Coffee"},
		"amount":      {"4.50"},
		"category":    {"Food"},
		"type":        {"expense"},
		"date":        {"2025-03-01"},
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("HX-Trigger"); got != "ledger-changed" {
		t.Errorf("HX-Trigger = %q, want %q", got, "ledger-changed")
	}

	transactions, err := store.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("stored %d transactions, want 1", len(transactions))
	}
	tx := transactions[0]
	if tx.Description != "Coffee" || tx.Amount.Cents != 450 || tx.Type != core.Expense {
		t.Errorf("stored transaction = %+v", tx)
	}
	if tx.Date.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("date = %s, want 2025-03-01", tx.Date.Format("2006-01-02"))
	}
}

func TestCreateTransactionInvalidInputIsNoOp(t *testing.T) {
	s, store := newTestServer(t)

	cases := []struct {
		name string
		form url.Values
	}{
		{"zero amount", url.Values{"description": {"x"}, "amount": {"0"}, "category": {"Food"}, "type": {"expense"}}},
		{"negative amount", url.Values{"description": {"x"}, "amount": {"-5"}, "category": {"Food"}, "type": {"expense"}}},
		{"empty description", url.Values{"description": {"  "}, "amount": {"5"}, "category": {"Food"}, "type": {"expense"}}},
		{"unknown category", url.Values{"description": {"x"}, "amount": {"5"}, "category": {"Weird"}, "type": {"expense"}}},
		{"unknown type", url.Values{"description": {"x"}, "amount": {"5"}, "category": {"Food"}, "type": {"transfer"}}},
		{"bad date", url.Values{"description": {"x"}, "amount": {"5"}, "category": {"Food"}, "type": {"expense"}, "date": {"01/02/2025"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postForm(t, s, "/transactions", tc.form)
			if rec.Code != http.StatusNoContent {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("HX-Trigger"); got != "" {
				t.Errorf("HX-Trigger = %q, want empty", got)
			}
		})
	}

	transactions, _ := store.ListTransactions(context.Background())
	if len(transactions) != 0 {
		t.Errorf("stored %d transactions, want 0", len(transactions))
	}
}

func TestDeleteTransaction(t *testing.T) {
	s, store := newTestServer(t)

	stored, err := store.InsertTransaction(context.Background(), core.Transaction{
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Category:    core.CategoryFood,
		Type:        core.Expense,
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	if rec := postForm(t, s, "/transactions/delete", url.Values{"id": {stored.ID}}); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	transactions, _ := store.ListTransactions(context.Background())
	if len(transactions) != 0 {
		t.Errorf("stored %d transactions after delete, want 0", len(transactions))
	}

	// Unknown id is treated as already deleted.
	if rec := postForm(t, s, "/transactions/delete", url.Values{"id": {"nope"}}); rec.Code != http.StatusNoContent {
		t.Errorf("unknown id status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestCreateGoal(t *testing.T) {
	s, store := newTestServer(t)

	rec := postForm(t, s, "/goals", url.Values{"name": {"Vacation"}, "target": {"1000"}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	goals, _ := store.ListGoals(context.Background())
	if len(goals) != 1 {
		t.Fatalf("stored %d goals, want 1", len(goals))
	}
	if goals[0].Name != "Vacation" || goals[0].Target.Cents != 100000 {
		t.Errorf("stored goal = %+v", goals[0])
	}
}

func TestCreateGoalRejectsNonPositiveTarget(t *testing.T) {
	s, store := newTestServer(t)

	for _, target := range []string{"0", "-100"} {
		rec := postForm(t, s, "/goals", url.Values{"name": {"Vacation"}, "target": {target}})
		if rec.Code != http.StatusNoContent {
			t.Errorf("target %q status = %d, want %d", target, rec.Code, http.StatusNoContent)
		}
	}
	goals, _ := store.ListGoals(context.Background())
	if len(goals) != 0 {
		t.Errorf("stored %d goals, want 0", len(goals))
	}
}

func TestGoalPartialShowsProgress(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	if _, err := store.InsertGoal(ctx, core.SavingGoal{Name: "Vacation", Target: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	if _, err := store.InsertTransaction(ctx, core.Transaction{
		Description: "Salary",
		Amount:      core.Money{Cents: 9500},
		Category:    core.CategorySalary,
		Type:        core.Income,
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	rec := get(t, s, "/ui/goals")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Vacation") {
		t.Errorf("goal partial missing goal name: %s", body)
	}
	if !strings.Contains(body, "95%") {
		t.Errorf("goal partial missing 95%% progress: %s", body)
	}
}

func TestTransactionsPartialSearch(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	seed := []core.Transaction{
		{Description: "Coffee", Amount: core.Money{Cents: 450}, Category: core.CategoryFood, Type: core.Expense, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "Food delivery", Amount: core.Money{Cents: 2000}, Category: core.CategoryFood, Type: core.Expense, Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Description: "Salary", Amount: core.Money{Cents: 100000}, Category: core.CategorySalary, Type: core.Income, Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tx := range seed {
		if _, err := store.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("InsertTransaction: %v", err)
		}
	}

	rec := get(t, s, "/ui/transactions?q=foo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Coffee") || !strings.Contains(body, "Food delivery") {
		t.Errorf("filtered partial missing expected rows: %s", body)
	}
	if strings.Contains(body, "Salary") {
		t.Errorf("filtered partial should not contain Salary: %s", body)
	}

	rec = get(t, s, "/ui/transactions?q=zzz")
	if !strings.Contains(rec.Body.String(), "No transactions match") {
		t.Errorf("no-match partial missing message: %s", rec.Body.String())
	}
}

func TestExport(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	// Empty ledger exports nothing.
	if rec := get(t, s, "/export"); rec.Code != http.StatusNoContent {
		t.Fatalf("empty export status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	if _, err := store.InsertTransaction(ctx, core.Transaction{
		Description: "Salary",
		Amount:      core.Money{Cents: 100000},
		Category:    core.CategorySalary,
		Type:        core.Income,
		Date:        time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	rec := get(t, s, "/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "ledger-lite-export-") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Date,Description,Category,Type,Amount\n") {
		t.Errorf("export missing header row: %s", body)
	}
	if !strings.Contains(body, "2025-03-02,Salary,Salary,income,1000") {
		t.Errorf("export missing data row: %s", body)
	}
}

func TestThemeToggle(t *testing.T) {
	s, store := newTestServer(t)

	rec := postForm(t, s, "/theme", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != ledger.ThemeLight {
		t.Errorf("toggled theme = %q, want %q", got, ledger.ThemeLight)
	}
	if stored, _ := store.GetPreference(context.Background(), ledger.PrefTheme); stored != ledger.ThemeLight {
		t.Errorf("stored theme = %q, want %q", stored, ledger.ThemeLight)
	}

	rec = postForm(t, s, "/theme", url.Values{})
	if got := rec.Body.String(); got != ledger.ThemeDark {
		t.Errorf("second toggle theme = %q, want %q", got, ledger.ThemeDark)
	}
}

func TestIndexRenders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-theme="dark"`) {
		t.Errorf("index missing dark theme default")
	}
	if !strings.Contains(body, "Ledger Lite") {
		t.Errorf("index missing title")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/")
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if csp := rec.Header().Get("Content-Security-Policy"); csp == "" {
		t.Error("missing Content-Security-Policy header")
	}
}

func TestMutationMethodGuards(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/transactions", "/transactions/delete", "/goals", "/goals/delete", "/theme"} {
		if rec := get(t, s, path); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}
