package ledger

import (
	"context"

	"ledgerlite/internal/core"
)

// Theme preference key and values stored through PreferenceStore.
const (
	PrefTheme    = "theme"
	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeDark
)

// Ports for outbound persistence adapters. Each store owns the durable copy
// of its records; callers keep no local state beyond what a render reads
// back. Every operation is attempted once per user action, with no retries.
type (
	TransactionStore interface {
		// ListTransactions returns all transactions sorted by date descending.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// InsertTransaction persists a new transaction, assigning ID and
		// CreatedAt, and returns the stored record.
		InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// DeleteTransaction removes a transaction by ID. Unknown IDs are a
		// no-op, not an error.
		DeleteTransaction(ctx context.Context, id string) error
	}

	GoalStore interface {
		// ListGoals returns all goals sorted by creation time ascending.
		ListGoals(ctx context.Context) ([]core.SavingGoal, error)
		InsertGoal(ctx context.Context, g core.SavingGoal) (core.SavingGoal, error)
		DeleteGoal(ctx context.Context, id string) error
	}

	// PreferenceStore persists small key-value settings (currently only the
	// UI theme) across restarts.
	PreferenceStore interface {
		// GetPreference returns the stored value, or "" when absent.
		GetPreference(ctx context.Context, key string) (string, error)
		SetPreference(ctx context.Context, key, value string) error
	}

	// Store is the full persistence surface a backend provides.
	Store interface {
		TransactionStore
		GoalStore
		PreferenceStore
	}
)
