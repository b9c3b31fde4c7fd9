package account

import (
	"time"

	"github.com/google/uuid"
)

// CreatedEvent is emitted when a new account is opened.
type CreatedEvent struct {
	AccountID     uuid.UUID
	AccountNumber string
	HolderID      string
	Currency      string
	OccurredAt    time.Time
}

// Type implements domain.Event.
func (CreatedEvent) Type() string { return "account.created" }

// BalanceChangedEvent is emitted on every successful debit or credit,
// carrying the balance before and after in the smallest currency unit.
type BalanceChangedEvent struct {
	AccountID       uuid.UUID
	AccountNumber   string
	PreviousBalance int64
	NewBalance      int64
	Currency        string
	Operation       string // "Debit" or "Credit"
	OccurredAt      time.Time
}

// Type implements domain.Event.
func (BalanceChangedEvent) Type() string { return "account.balance_changed" }

// DeletedEvent is emitted when an account is soft-deleted.
type DeletedEvent struct {
	AccountID     uuid.UUID
	AccountNumber string
	HolderID      string
	OccurredAt    time.Time
}

// Type implements domain.Event.
func (DeletedEvent) Type() string { return "account.deleted" }
