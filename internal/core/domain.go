package core

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used for Transaction.Date.
const DateLayout = "2006-01-02"

// Transaction is a single income or expense record. The sign of AmountCents
// encodes the type: positive is income, negative is expense. ID and Timestamp
// are set once at creation and never change.
type Transaction struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

var (
	ErrEmptyID          = errors.New("empty id")
	ErrEmptyDescription = errors.New("empty description")
	ErrZeroAmount       = errors.New("amount must be non-zero")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyCategory    = errors.New("empty category")
)

// IsIncome reports whether the transaction is an income record.
func (t Transaction) IsIncome() bool {
	return t.AmountCents > 0
}

// Type returns the display label for the transaction kind.
func (t Transaction) Type() string {
	if t.IsIncome() {
		return "Income"
	}
	return "Expense"
}

func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.AmountCents == 0 {
		return ErrZeroAmount
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// NewID generates an opaque unique transaction identifier.
func NewID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("txn_%d", time.Now().UnixNano())
	}
	return "txn_" + hex.EncodeToString(b)
}
