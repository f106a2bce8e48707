package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger/memory"
)

type capturingPublisher struct {
	events []*amqp.RecordEventMessage
	err    error
}

func (p *capturingPublisher) PublishRecordEvent(_ context.Context, msg *amqp.RecordEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

func sampleTransaction() core.Transaction {
	return core.Transaction{
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Category:    core.CategoryFood,
		Date:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Type:        core.Expense,
	}
}

func TestCreateTransactionPublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	created, err := svc.InsertTransaction(context.Background(), sampleTransaction())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != amqp.KindTransaction || ev.Op != amqp.OpCreate || ev.ID != created.ID {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestPublishFailureDoesNotFailAction(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := NewLedgerService(memory.New(), pub)

	if _, err := svc.InsertTransaction(context.Background(), sampleTransaction()); err != nil {
		t.Fatalf("publish failure must not fail the insert: %v", err)
	}
	ts, _ := svc.ListTransactions(context.Background())
	if len(ts) != 1 {
		t.Fatalf("transaction should be stored despite publish failure")
	}
}

func TestNilPublisherDowngrades(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	if _, err := svc.InsertTransaction(context.Background(), sampleTransaction()); err != nil {
		t.Fatalf("insert with nil publisher: %v", err)
	}
	if err := svc.DeleteTransaction(context.Background(), "missing"); err != nil {
		t.Fatalf("delete with nil publisher: %v", err)
	}
}

func TestFailedInsertPublishesNothing(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	if _, err := svc.InsertGoal(context.Background(), core.SavingGoal{Name: "x"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(pub.events) != 0 {
		t.Fatalf("no event should be published for a failed insert")
	}
}

func TestDeleteGoalPublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	g, err := svc.InsertGoal(context.Background(), core.SavingGoal{Name: "Trip", Target: core.Money{Cents: 50000}})
	if err != nil {
		t.Fatalf("insert goal: %v", err)
	}
	if err := svc.DeleteGoal(context.Background(), g.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected create+delete events, got %d", len(pub.events))
	}
	if pub.events[1].Op != amqp.OpDelete || pub.events[1].Kind != amqp.KindGoal {
		t.Fatalf("unexpected second event %+v", pub.events[1])
	}
}
