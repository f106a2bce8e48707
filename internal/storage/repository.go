package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"

	_ "modernc.org/sqlite"
)

const (
	listTransactionsSQL = `SELECT id, description, amount_cents, category, date, type, created_at
FROM transactions
ORDER BY date DESC, created_at DESC, id`

	insertTransactionSQL = `INSERT INTO transactions (id, description, amount_cents, category, date, type, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	deleteTransactionSQL = `DELETE FROM transactions WHERE id = ?`

	listGoalsSQL = `SELECT id, name, target_cents, created_at
FROM saving_goals
ORDER BY created_at, id`

	insertGoalSQL = `INSERT INTO saving_goals (id, name, target_cents, created_at)
VALUES (?, ?, ?, ?)`

	deleteGoalSQL = `DELETE FROM saving_goals WHERE id = ?`

	getPreferenceSQL = `SELECT value FROM preferences WHERE key = ?`

	setPreferenceSQL = `INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`
)

// SQLiteRepository is the default durable backend.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t              core.Transaction
			date, created  string
			category, kind string
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount.Cents, &category, &date, &kind, &created); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Category = core.Category(category)
		t.Type = core.TransactionType(kind)
		if t.Date, err = parseStoredTime(date); err != nil {
			return nil, fmt.Errorf("parse transaction date: %w", err)
		}
		if t.CreatedAt, err = parseStoredTime(created); err != nil {
			return nil, fmt.Errorf("parse transaction created_at: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.ID, t.Description, t.Amount.Cents, string(t.Category),
		formatStoredTime(t.Date), string(t.Type), formatStoredTime(t.CreatedAt))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"description", t.Description,
		"amount_cents", t.Amount.Cents,
		"category", t.Category,
		"type", t.Type)
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	// deleting an absent row affects zero rows, which is fine
	if _, err := r.db.ExecContext(ctx, deleteTransactionSQL, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.SavingGoal, error) {
	rows, err := r.db.QueryContext(ctx, listGoalsSQL)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingGoal
	for rows.Next() {
		var (
			g       core.SavingGoal
			created string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Target.Cents, &created); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.CreatedAt, err = parseStoredTime(created); err != nil {
			return nil, fmt.Errorf("parse goal created_at: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.SavingGoal) (core.SavingGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingGoal{}, err
	}
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, insertGoalSQL,
		g.ID, g.Name, g.Target.Cents, formatStoredTime(g.CreatedAt))
	if err != nil {
		return core.SavingGoal{}, fmt.Errorf("insert goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal saved", "id", g.ID, "name", g.Name, "target_cents", g.Target.Cents)
	return g, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteGoalSQL, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getPreferenceSQL, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetPreference(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, setPreferenceSQL, key, value); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
