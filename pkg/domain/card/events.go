package card

import (
	"time"

	"github.com/google/uuid"
)

// CreatedEvent is emitted when a new card is issued.
type CreatedEvent struct {
	CardID       uuid.UUID
	MaskedNumber string
	AccountID    uuid.UUID
	HolderName   string
	CardType     string
	OccurredAt   time.Time
}

// Type implements domain.Event.
func (CreatedEvent) Type() string { return "card.created" }

// BlockedEvent is emitted when a card is blocked, permanently or temporarily.
type BlockedEvent struct {
	CardID       uuid.UUID
	MaskedNumber string
	Permanent    bool
	OccurredAt   time.Time
}

// Type implements domain.Event.
func (BlockedEvent) Type() string { return "card.blocked" }

// UnblockedEvent is emitted when a temporary block is lifted.
type UnblockedEvent struct {
	CardID       uuid.UUID
	MaskedNumber string
	OccurredAt   time.Time
}

// Type implements domain.Event.
func (UnblockedEvent) Type() string { return "card.unblocked" }
