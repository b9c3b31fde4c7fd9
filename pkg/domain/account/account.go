// Package account implements the Account aggregate root. The account owns
// its balance; all mutation goes through Debit and Credit, which enforce
// currency matching and balance sufficiency.
package account

import (
	"strings"
	"time"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Account is a bank account aggregate root.
// Invariants:
//   - The balance currency is fixed at creation and never changes.
//   - The balance is never debited below zero.
//   - A soft-deleted account rejects all mutation.
type Account struct {
	ID          uuid.UUID
	Number      Number
	HolderID    string
	Balance     money.Money
	Description string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	events []domain.Event
}

// New opens a zero-balance account for the given holder.
func New(holderID string, code currency.Code, description string) (*Account, error) {
	if strings.TrimSpace(holderID) == "" {
		return nil, domain.Validation("account holder ID cannot be empty")
	}
	if !currency.IsValidFormat(string(code)) {
		return nil, domain.Validation("currency must be a 3-letter code")
	}
	if !currency.IsSupported(code) {
		return nil, domain.Validation("unsupported currency: " + code.String())
	}
	balance, err := money.Zero(code)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &Account{
		ID:          uuid.New(),
		Number:      GenerateNumber(),
		HolderID:    holderID,
		Balance:     balance,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.record(CreatedEvent{
		AccountID:     a.ID,
		AccountNumber: a.Number.String(),
		HolderID:      holderID,
		Currency:      code.String(),
		OccurredAt:    now,
	})
	return a, nil
}

// Debit withdraws the given amount from the account.
func (a *Account) Debit(amount money.Money) error {
	if a.IsDeleted {
		return domain.InvalidOperation("cannot debit a deleted account")
	}
	if !a.Balance.IsSameCurrency(amount) {
		return domain.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return domain.Validation("debit amount must be positive")
	}
	sufficient, err := a.Balance.GreaterThanOrEqual(amount)
	if err != nil {
		return err
	}
	if !sufficient {
		return &domain.InsufficientBalanceError{
			Available: a.Balance.Amount(),
			Required:  amount.Amount(),
			Currency:  a.Balance.Currency().String(),
		}
	}
	previous := a.Balance
	newBalance, err := a.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.applyBalance(previous, newBalance, "Debit")
	return nil
}

// Credit deposits the given amount into the account.
func (a *Account) Credit(amount money.Money) error {
	if a.IsDeleted {
		return domain.InvalidOperation("cannot credit a deleted account")
	}
	if !a.Balance.IsSameCurrency(amount) {
		return domain.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return domain.Validation("credit amount must be positive")
	}
	previous := a.Balance
	newBalance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.applyBalance(previous, newBalance, "Credit")
	return nil
}

// UpdateDescription replaces the account description.
func (a *Account) UpdateDescription(description string) error {
	if a.IsDeleted {
		return domain.InvalidOperation("cannot update a deleted account")
	}
	a.Description = description
	a.touch()
	return nil
}

// MarkAsDeleted soft-deletes the account. Calling it on an already deleted
// account sets the flag again without error.
func (a *Account) MarkAsDeleted() {
	a.IsDeleted = true
	a.touch()
	a.record(DeletedEvent{
		AccountID:     a.ID,
		AccountNumber: a.Number.String(),
		HolderID:      a.HolderID,
		OccurredAt:    time.Now().UTC(),
	})
}

// Currency returns the fixed currency of the account balance.
func (a *Account) Currency() currency.Code {
	return a.Balance.Currency()
}

// PullEvents drains and returns the events collected since the last call.
func (a *Account) PullEvents() []domain.Event {
	events := a.events
	a.events = nil
	return events
}

func (a *Account) applyBalance(previous, next money.Money, operation string) {
	a.Balance = next
	a.touch()
	a.record(BalanceChangedEvent{
		AccountID:       a.ID,
		AccountNumber:   a.Number.String(),
		PreviousBalance: previous.Amount(),
		NewBalance:      next.Amount(),
		Currency:        next.Currency().String(),
		Operation:       operation,
		OccurredAt:      a.UpdatedAt,
	})
}

func (a *Account) record(e domain.Event) {
	a.events = append(a.events, e)
}

func (a *Account) touch() {
	a.UpdatedAt = time.Now().UTC()
}
