// Package transfer implements the MoneyTransfer aggregate: the record of a
// card-to-card transfer intent and its outcome. It is created alongside a
// correlated Transaction for card-originated transfers but owns its own
// lifecycle.
package transfer

import (
	"fmt"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a money transfer. Execute and Fail are
// the only state-advancing operations, each valid only from Pending.
type Status string

// Money transfer statuses.
const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// MoneyTransfer records a card-to-card transfer.
type MoneyTransfer struct {
	ID               uuid.UUID
	SourceCardNumber card.Number
	TargetCardNumber card.Number
	SourceAccountID  uuid.UUID
	TargetAccountID  uuid.UUID
	Amount           money.Money
	Status           Status
	Description      string
	FailureReason    string
	IsDeleted        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	events []domain.Event
}

// New creates a pending money transfer.
func New(
	sourceCardNumber, targetCardNumber card.Number,
	sourceAccountID, targetAccountID uuid.UUID,
	amount money.Money,
	description string,
) (*MoneyTransfer, error) {
	if sourceCardNumber == "" {
		return nil, domain.Validation("source card number cannot be empty")
	}
	if targetCardNumber == "" {
		return nil, domain.Validation("target card number cannot be empty")
	}
	if sourceCardNumber == targetCardNumber {
		return nil, domain.Validation("source and target cards cannot be the same")
	}
	if sourceAccountID == uuid.Nil {
		return nil, domain.Validation("source account ID cannot be empty")
	}
	if targetAccountID == uuid.Nil {
		return nil, domain.Validation("target account ID cannot be empty")
	}
	if sourceAccountID == targetAccountID {
		return nil, domain.Validation("source and target accounts cannot be the same")
	}
	if !amount.IsPositive() {
		return nil, domain.Validation("transfer amount must be positive")
	}
	now := time.Now().UTC()
	mt := &MoneyTransfer{
		ID:               uuid.New(),
		SourceCardNumber: sourceCardNumber,
		TargetCardNumber: targetCardNumber,
		SourceAccountID:  sourceAccountID,
		TargetAccountID:  targetAccountID,
		Amount:           amount,
		Status:           StatusPending,
		Description:      description,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	mt.record(CreatedEvent{
		TransferID:       mt.ID,
		SourceCardMasked: sourceCardNumber.Masked(),
		TargetCardMasked: targetCardNumber.Masked(),
		Amount:           amount.Amount(),
		Currency:         amount.Currency().String(),
		OccurredAt:       now,
	})
	return mt, nil
}

// Execute marks the transfer as completed. Only valid from Pending.
func (mt *MoneyTransfer) Execute() error {
	if mt.IsDeleted {
		return domain.InvalidOperation("cannot execute a deleted transfer")
	}
	if mt.Status != StatusPending {
		return domain.InvalidOperation(
			fmt.Sprintf("cannot execute transfer in %s status", mt.Status))
	}
	mt.Status = StatusCompleted
	mt.touch()
	mt.record(CompletedEvent{
		TransferID:       mt.ID,
		SourceCardMasked: mt.SourceCardNumber.Masked(),
		TargetCardMasked: mt.TargetCardNumber.Masked(),
		Amount:           mt.Amount.Amount(),
		Currency:         mt.Amount.Currency().String(),
		OccurredAt:       mt.UpdatedAt,
	})
	return nil
}

// Fail marks the transfer as failed with a reason. Only valid from Pending.
func (mt *MoneyTransfer) Fail(reason string) error {
	if mt.IsDeleted {
		return domain.InvalidOperation("cannot fail a deleted transfer")
	}
	if mt.Status != StatusPending {
		return domain.InvalidOperation(
			fmt.Sprintf("cannot fail transfer in %s status", mt.Status))
	}
	mt.Status = StatusFailed
	mt.FailureReason = reason
	mt.touch()
	mt.record(FailedEvent{
		TransferID: mt.ID,
		Reason:     reason,
		OccurredAt: mt.UpdatedAt,
	})
	return nil
}

// PullEvents drains and returns the events collected since the last call.
func (mt *MoneyTransfer) PullEvents() []domain.Event {
	events := mt.events
	mt.events = nil
	return events
}

func (mt *MoneyTransfer) record(e domain.Event) {
	mt.events = append(mt.events, e)
}

func (mt *MoneyTransfer) touch() {
	mt.UpdatedAt = time.Now().UTC()
}

// CreatedEvent is emitted when a transfer record is created.
type CreatedEvent struct {
	TransferID       uuid.UUID
	SourceCardMasked string
	TargetCardMasked string
	Amount           int64
	Currency         string
	OccurredAt       time.Time
}

// Type implements domain.Event.
func (CreatedEvent) Type() string { return "transfer.created" }

// CompletedEvent is emitted when a transfer completes.
type CompletedEvent struct {
	TransferID       uuid.UUID
	SourceCardMasked string
	TargetCardMasked string
	Amount           int64
	Currency         string
	OccurredAt       time.Time
}

// Type implements domain.Event.
func (CompletedEvent) Type() string { return "transfer.completed" }

// FailedEvent is emitted when a transfer fails.
type FailedEvent struct {
	TransferID uuid.UUID
	Reason     string
	OccurredAt time.Time
}

// Type implements domain.Event.
func (FailedEvent) Type() string { return "transfer.failed" }
