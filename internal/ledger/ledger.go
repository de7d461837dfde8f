// Package ledger records transactions against the active session and derives
// per-person and per-session totals from them.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"bartab/internal/session"
)

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Transaction is one recorded charge. Price is the charged price computed at
// creation time; it is a snapshot and is never re-derived from the item, so
// later catalog price changes leave history untouched.
type Transaction struct {
	ID         int64
	SessionID  int64
	PersonID   int64
	PersonName string // Loaded via JOIN
	ItemID     int64
	ItemName   string // Loaded via JOIN
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// PersonTotal is one person's aggregate within a session.
type PersonTotal struct {
	PersonID int64
	Name     string
	Total    decimal.Decimal
	Count    int64
}

// Summary is the active session's per-person debts plus the grand total.
type Summary struct {
	Session   *session.Session
	PerPerson []PersonTotal
	Total     decimal.Decimal
}
