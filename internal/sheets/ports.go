package sheets

import (
	"context"

	"ledgerlite/internal/core"
)

// RecordMirror is the outbound port for keeping an external spreadsheet in
// step with the ledger. Mirror writes are best effort and idempotent per
// record ID.
type RecordMirror interface {
	AppendTransaction(ctx context.Context, t core.Transaction) error
	RemoveTransaction(ctx context.Context, id string) error
	AppendGoal(ctx context.Context, g core.SavingGoal) error
	RemoveGoal(ctx context.Context, id string) error
}
