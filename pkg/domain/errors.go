package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. Aggregate packages wrap these sentinels so callers
// can classify failures with errors.Is without depending on message text.
var (
	// ErrNotFound is returned when a referenced aggregate does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when input to a factory or operation is malformed.
	ErrValidation = errors.New("validation error")
	// ErrInvalidOperation is returned when a state transition is attempted
	// from a state that forbids it.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrCurrencyMismatch is returned on cross-currency arithmetic or
	// transfer attempts. It is a kind of invalid operation.
	ErrCurrencyMismatch = fmt.Errorf("%w: currency mismatch", ErrInvalidOperation)
	// ErrInsufficientBalance is the sentinel matched by
	// InsufficientBalanceError via errors.Is.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyExists is returned when a uniqueness constraint (account
	// number, card number, holder email) would be violated.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrUnauthorized is returned when the caller does not own the resource
	// an operation acts on.
	ErrUnauthorized = errors.New("unauthorized")
)

// InsufficientBalanceError reports a debit that would overdraw an account.
// It carries the available and required amounts in the smallest currency
// unit so the request layer can render a specific message.
type InsufficientBalanceError struct {
	Available int64
	Required  int64
	Currency  string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %d, required %d (%s)",
		e.Available, e.Required, e.Currency)
}

// Is makes errors.Is(err, ErrInsufficientBalance) succeed.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Validation wraps ErrValidation with a descriptive message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// InvalidOperation wraps ErrInvalidOperation with a descriptive message.
func InvalidOperation(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, msg)
}
