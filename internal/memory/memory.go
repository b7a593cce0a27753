// Package memory is an in-process table store used as the default backend
// and as the test double for the SQLite repository.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"finboard/internal/aggregate"
	"finboard/internal/core"
)

type Store struct {
	mu       sync.Mutex
	rows     map[string][]aggregate.Record // userID -> rows, ascending by date
	settings map[string]core.Settings
}

func New() *Store {
	return &Store{
		rows:     make(map[string][]aggregate.Record),
		settings: make(map[string]core.Settings),
	}
}

// Seed inserts pre-built raw rows for a user, keeping the ascending sort.
// Rows may be arbitrarily malformed; the store does not validate them, the
// normalizer does.
func (s *Store) Seed(userID string, rows []aggregate.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[userID] = append(s.rows[userID], rows...)
	sortAscending(s.rows[userID])
}

// ListTransactions implements store.TransactionReader.
func (s *Store) ListTransactions(_ context.Context, userID string) ([]aggregate.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[userID]
	out := make([]aggregate.Record, len(rows))
	copy(out, rows)
	return out, nil
}

// RecentTransactions implements store.TransactionReader.
func (s *Store) RecentTransactions(_ context.Context, userID string, limit int) ([]aggregate.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[userID]
	out := make([]aggregate.Record, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

// CreateTransaction implements store.TransactionWriter.
func (s *Store) CreateTransaction(_ context.Context, userID string, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	id := tx.ID
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[userID] = append(s.rows[userID], aggregate.Record{
		ID:          id,
		Description: tx.Description,
		Date:        tx.Date.Format("2006-01-02"),
		Category:    tx.Category,
		Amount:      core.FormatCents(tx.Amount.Cents),
		Type:        string(tx.Type),
		UserID:      userID,
	})
	sortAscending(s.rows[userID])
	return id, nil
}

// DeleteTransaction implements store.TransactionWriter.
func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[userID]
	for i, row := range rows {
		if row.ID == id {
			s.rows[userID] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// ReadSettings implements store.SettingsReader. Unknown users read as the
// zero value.
func (s *Store) ReadSettings(_ context.Context, userID string) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[userID], nil
}

// WriteSpendingGoal implements store.SettingsWriter.
func (s *Store) WriteSpendingGoal(_ context.Context, userID string, goal core.Money) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.settings[userID]
	cfg.SpendingGoal = goal
	s.settings[userID] = cfg
	return nil
}

// Date strings sort lexicographically in both supported layouts, which keeps
// the stable sort cheap and deterministic for equal dates.
func sortAscending(rows []aggregate.Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
}
