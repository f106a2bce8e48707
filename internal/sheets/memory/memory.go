// Package memory provides an in-memory RecordMirror used in tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"sync"

	"ledgerlite/internal/core"
	ports "ledgerlite/internal/sheets"
)

type Mirror struct {
	mu           sync.Mutex
	transactions map[string]core.Transaction
	goals        map[string]core.SavingGoal
}

var _ ports.RecordMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{
		transactions: make(map[string]core.Transaction),
		goals:        make(map[string]core.SavingGoal),
	}
}

func (m *Mirror) AppendTransaction(_ context.Context, t core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.ID] = t
	return nil
}

func (m *Mirror) RemoveTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

func (m *Mirror) AppendGoal(_ context.Context, g core.SavingGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g
	return nil
}

func (m *Mirror) RemoveGoal(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.goals, id)
	return nil
}

// Transaction reports whether a transaction is currently mirrored.
func (m *Mirror) Transaction(id string) (core.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	return t, ok
}

// Goal reports whether a goal is currently mirrored.
func (m *Mirror) Goal(id string) (core.SavingGoal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	return g, ok
}
