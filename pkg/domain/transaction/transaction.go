// Package transaction implements the Transaction aggregate: an auditable
// record of a directional money movement with a one-way status lifecycle.
package transaction

import (
	"fmt"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Type is the direction of a money movement.
type Type string

// Transaction types.
const (
	TypeDeposit    Type = "Deposit"
	TypeWithdrawal Type = "Withdrawal"
	TypeTransfer   Type = "Transfer"
)

// Status is the lifecycle state of a transaction. Transitions are one-way:
// Pending -> Completed or Pending -> Failed, both terminal.
type Status string

// Transaction statuses.
const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Transaction records a money movement between accounts.
type Transaction struct {
	ID              uuid.UUID
	SourceAccountID *uuid.UUID
	TargetAccountID *uuid.UUID
	Amount          money.Money
	TxType          Type
	Status          Status
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	events []domain.Event
}

// New creates a pending transaction. Account references are validated per
// type: a transfer needs both (and distinct), a deposit needs a target, a
// withdrawal needs a source.
func New(sourceID, targetID *uuid.UUID, amount money.Money, txType Type, description string) (*Transaction, error) {
	switch txType {
	case TypeTransfer:
		if sourceID == nil || targetID == nil {
			return nil, domain.Validation("transfer requires both source and target account")
		}
		if *sourceID == *targetID {
			return nil, domain.Validation("cannot transfer to the same account")
		}
	case TypeDeposit:
		if targetID == nil {
			return nil, domain.Validation("deposit requires a target account")
		}
	case TypeWithdrawal:
		if sourceID == nil {
			return nil, domain.Validation("withdrawal requires a source account")
		}
	default:
		return nil, domain.Validation("unknown transaction type: " + string(txType))
	}
	if !amount.IsPositive() {
		return nil, domain.Validation("transaction amount must be positive")
	}
	now := time.Now().UTC()
	t := &Transaction{
		ID:              uuid.New(),
		SourceAccountID: sourceID,
		TargetAccountID: targetID,
		Amount:          amount,
		TxType:          txType,
		Status:          StatusPending,
		Description:     description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t.record(CreatedEvent{
		TransactionID: t.ID,
		Amount:        amount.Amount(),
		Currency:      amount.Currency().String(),
		TxType:        string(txType),
		OccurredAt:    now,
	})
	return t, nil
}

// Execute marks the transaction as completed. Only valid from Pending.
func (t *Transaction) Execute() error {
	if t.Status != StatusPending {
		return domain.InvalidOperation(
			fmt.Sprintf("cannot execute transaction in %s status", t.Status))
	}
	t.Status = StatusCompleted
	t.touch()
	t.record(ExecutedEvent{
		TransactionID: t.ID,
		Amount:        t.Amount.Amount(),
		Currency:      t.Amount.Currency().String(),
		OccurredAt:    t.UpdatedAt,
	})
	return nil
}

// Fail marks the transaction as failed with a reason. A completed
// transaction cannot be rolled back.
func (t *Transaction) Fail(reason string) error {
	if t.Status == StatusCompleted {
		return domain.InvalidOperation("cannot roll back a completed transaction")
	}
	if t.Status == StatusFailed {
		return domain.InvalidOperation("transaction already failed")
	}
	t.Status = StatusFailed
	t.Description = fmt.Sprintf("%s [failed: %s]", t.Description, reason)
	t.touch()
	t.record(FailedEvent{
		TransactionID: t.ID,
		Reason:        reason,
		OccurredAt:    t.UpdatedAt,
	})
	return nil
}

// PullEvents drains and returns the events collected since the last call.
func (t *Transaction) PullEvents() []domain.Event {
	events := t.events
	t.events = nil
	return events
}

func (t *Transaction) record(e domain.Event) {
	t.events = append(t.events, e)
}

func (t *Transaction) touch() {
	t.UpdatedAt = time.Now().UTC()
}

// CreatedEvent is emitted when a transaction record is created.
type CreatedEvent struct {
	TransactionID uuid.UUID
	Amount        int64
	Currency      string
	TxType        string
	OccurredAt    time.Time
}

// Type implements domain.Event.
func (CreatedEvent) Type() string { return "transaction.created" }

// ExecutedEvent is emitted when a transaction completes.
type ExecutedEvent struct {
	TransactionID uuid.UUID
	Amount        int64
	Currency      string
	OccurredAt    time.Time
}

// Type implements domain.Event.
func (ExecutedEvent) Type() string { return "transaction.executed" }

// FailedEvent is emitted when a transaction fails.
type FailedEvent struct {
	TransactionID uuid.UUID
	Reason        string
	OccurredAt    time.Time
}

// Type implements domain.Event.
func (FailedEvent) Type() string { return "transaction.failed" }
