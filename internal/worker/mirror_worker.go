package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
	"ledgerlite/internal/sheets"
)

// MirrorWorker applies record events to an external spreadsheet mirror. It
// reads the durable copy back from the store for creates, so an event that
// arrives after the record is gone is skipped rather than retried forever.
type MirrorWorker struct {
	store  ledger.Store
	mirror sheets.RecordMirror
}

func NewMirrorWorker(store ledger.Store, mirror sheets.RecordMirror) *MirrorWorker {
	return &MirrorWorker{
		store:  store,
		mirror: mirror,
	}
}

// HandleRecordEvent processes a single record event from AMQP. Returning an
// error nacks the message for redelivery.
func (w *MirrorWorker) HandleRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	slog.InfoContext(ctx, "Processing record event",
		"kind", msg.Kind,
		"id", msg.ID,
		"op", msg.Op)

	switch {
	case msg.Kind == amqp.KindTransaction && msg.Op == amqp.OpCreate:
		return w.mirrorTransaction(ctx, msg.ID)
	case msg.Kind == amqp.KindTransaction && msg.Op == amqp.OpDelete:
		if err := w.mirror.RemoveTransaction(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove transaction from mirror: %w", err)
		}
		return nil
	case msg.Kind == amqp.KindGoal && msg.Op == amqp.OpCreate:
		return w.mirrorGoal(ctx, msg.ID)
	case msg.Kind == amqp.KindGoal && msg.Op == amqp.OpDelete:
		if err := w.mirror.RemoveGoal(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove goal from mirror: %w", err)
		}
		return nil
	default:
		// Validation upstream should make this unreachable.
		return fmt.Errorf("unhandled record event kind=%q op=%q", msg.Kind, msg.Op)
	}
}

func (w *MirrorWorker) mirrorTransaction(ctx context.Context, id string) error {
	transactions, err := w.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	transaction, ok := findTransaction(transactions, id)
	if !ok {
		slog.WarnContext(ctx, "Transaction no longer in store, skipping mirror", "id", id)
		return nil
	}
	if err := w.mirror.AppendTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("append transaction to mirror: %w", err)
	}
	return nil
}

func (w *MirrorWorker) mirrorGoal(ctx context.Context, id string) error {
	goals, err := w.store.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	goal, ok := findGoal(goals, id)
	if !ok {
		slog.WarnContext(ctx, "Goal no longer in store, skipping mirror", "id", id)
		return nil
	}
	if err := w.mirror.AppendGoal(ctx, goal); err != nil {
		return fmt.Errorf("append goal to mirror: %w", err)
	}
	return nil
}

func findTransaction(transactions []core.Transaction, id string) (core.Transaction, bool) {
	for _, t := range transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

func findGoal(goals []core.SavingGoal, id string) (core.SavingGoal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return core.SavingGoal{}, false
}
