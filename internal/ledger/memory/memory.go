package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerlite/internal/core"
)

// Store is a mutex-guarded in-memory backend used for local development and
// as the in-process fake in tests.
type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	goals        []core.SavingGoal
	prefs        map[string]string
	now          func() time.Time
}

func New() *Store {
	return &Store{
		prefs: make(map[string]string),
		now:   time.Now,
	}
}

// NewWithClock fixes the CreatedAt clock, for deterministic tests.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.transactions...)
	sortTransactions(out)
	return out, nil
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = s.now()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	// unknown IDs are a no-op
	return nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// insertion order is creation order
	return append([]core.SavingGoal(nil), s.goals...), nil
}

func (s *Store) InsertGoal(_ context.Context, g core.SavingGoal) (core.SavingGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingGoal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.NewString()
	g.CreatedAt = s.now()
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *Store) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) GetPreference(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[key], nil
}

func (s *Store) SetPreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	return nil
}

// sortTransactions orders date-descending, breaking ties by CreatedAt
// descending then ID so the display order is deterministic.
func sortTransactions(ts []core.Transaction) {
	sort.SliceStable(ts, func(i, j int) bool {
		if !ts[i].Date.Equal(ts[j].Date) {
			return ts[i].Date.After(ts[j].Date)
		}
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		return ts[i].ID < ts[j].ID
	})
}
