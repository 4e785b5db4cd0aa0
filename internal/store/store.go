// Package store owns the ordered in-memory transaction list and keeps the
// persistence adapter synchronized with it on every mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
	applog "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/log"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/persist"
)

// Store is the single source of truth for the transaction list. The list is
// reverse-insertion ordered: Add always prepends. Every completed mutation
// leaves the persisted blob equal to the in-memory list; a failed persist
// rolls the in-memory change back so neither side observes a half-applied
// mutation.
type Store struct {
	mu     sync.Mutex
	txns   []core.Transaction
	rev    uint64
	blob   persist.BlobStore
	logger *applog.Logger
}

func New(blob persist.BlobStore, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(slog.LevelInfo, applog.ComponentStore)
	}
	return &Store{
		txns:   []core.Transaction{},
		blob:   blob,
		logger: logger.WithComponent(applog.ComponentStore),
	}
}

// Load hydrates the list from the persistence adapter. An absent blob yields
// an empty list. A malformed blob also yields an empty list with a logged
// warning; only an I/O failure is returned as an error.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		s.txns = []core.Transaction{}
		return nil
	}

	var txns []core.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		s.logger.WarnContext(ctx, "Stored transactions are malformed, starting empty",
			"error", err, "bytes", len(data))
		s.txns = []core.Transaction{}
		return nil
	}
	if txns == nil {
		txns = []core.Transaction{}
	}

	s.txns = txns
	s.logger.InfoContext(ctx, "Transactions loaded", "count", len(txns))
	return nil
}

// Add creates a transaction with a fresh id and timestamp, prepends it to the
// list, and persists the full list. The amount must already be parsed and
// non-zero; callers validate raw input with core.ValidateInput first.
func (s *Store) Add(ctx context.Context, description string, amountCents int64, date, category string) (core.Transaction, error) {
	txn := core.Transaction{
		ID:          core.NewID(),
		Description: strings.TrimSpace(description),
		AmountCents: amountCents,
		Date:        date,
		Category:    category,
		Timestamp:   time.Now().UTC(),
	}
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.txns
	s.txns = append([]core.Transaction{txn}, s.txns...)

	if err := s.persistLocked(ctx); err != nil {
		s.txns = prev
		return core.Transaction{}, fmt.Errorf("persist after add: %w", err)
	}
	s.rev++

	s.logger.InfoContext(ctx, "Transaction added",
		"id", txn.ID,
		"description", txn.Description,
		"amount_cents", txn.AmountCents,
		"category", txn.Category,
		"date", txn.Date)

	return txn, nil
}

// Delete removes the first record matching id and reports whether a record
// was removed. The list is persisted only if a removal occurred.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.txns {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	prev := s.txns
	next := make([]core.Transaction, 0, len(s.txns)-1)
	next = append(next, s.txns[:idx]...)
	next = append(next, s.txns[idx+1:]...)
	s.txns = next

	if err := s.persistLocked(ctx); err != nil {
		s.txns = prev
		return false, fmt.Errorf("persist after delete: %w", err)
	}
	s.rev++

	s.logger.InfoContext(ctx, "Transaction deleted", "id", id)
	return true, nil
}

// List returns a snapshot of the current list, most recently added first.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Len returns the current number of transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

// Revision is a monotonic counter bumped on every successful mutation.
// Callers use it to key caches of derived data.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.txns)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := s.blob.Save(ctx, data); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}
