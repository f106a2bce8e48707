package services

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
)

// Publisher is the slice of the AMQP client the service needs. A nil
// publisher downgrades to store-only operation.
type Publisher interface {
	PublishRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error
}

// LedgerService orchestrates store writes and record-event publication.
// The store write always happens first; a publish failure never fails the
// user action.
type LedgerService struct {
	store     ledger.Store
	publisher Publisher
	closeFn   func() error
}

var _ ledger.Store = (*LedgerService)(nil)

func NewLedgerService(store ledger.Store, publisher Publisher) *LedgerService {
	return &LedgerService{store: store, publisher: publisher}
}

// WithCloser registers a cleanup function invoked by Close.
func (s *LedgerService) WithCloser(closeFn func() error) *LedgerService {
	s.closeFn = closeFn
	return s
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *LedgerService) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	created, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	s.publish(ctx, amqp.KindTransaction, created.ID, amqp.OpCreate)
	return created, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, amqp.KindTransaction, id, amqp.OpDelete)
	return nil
}

func (s *LedgerService) ListGoals(ctx context.Context) ([]core.SavingGoal, error) {
	return s.store.ListGoals(ctx)
}

func (s *LedgerService) InsertGoal(ctx context.Context, g core.SavingGoal) (core.SavingGoal, error) {
	created, err := s.store.InsertGoal(ctx, g)
	if err != nil {
		return core.SavingGoal{}, fmt.Errorf("insert goal: %w", err)
	}
	s.publish(ctx, amqp.KindGoal, created.ID, amqp.OpCreate)
	return created, nil
}

func (s *LedgerService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	s.publish(ctx, amqp.KindGoal, id, amqp.OpDelete)
	return nil
}

func (s *LedgerService) GetPreference(ctx context.Context, key string) (string, error) {
	return s.store.GetPreference(ctx, key)
}

func (s *LedgerService) SetPreference(ctx context.Context, key, value string) error {
	return s.store.SetPreference(ctx, key, value)
}

func (s *LedgerService) publish(ctx context.Context, kind, id, op string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Publisher not available, skipping record event",
			"kind", kind, "id", id, "op", op)
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, amqp.NewRecordEventMessage(kind, id, op)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"error", err, "kind", kind, "id", id, "op", op)
	}
}

func (s *LedgerService) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}
