// Package money provides the Money value object used for all balances and
// transaction amounts.
package money

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain"
)

// Money represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g. cents for USD).
//   - Currency code must be a valid ISO 4217 code (3 letters).
//   - All arithmetic requires matching currencies.
type Money struct {
	amount   int64
	currency currency.Code
}

// New creates a Money value from an amount in the main currency unit.
// The amount must not carry more decimal places than the currency allows.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, domain.Validation("currency must be a 3-letter code")
	}
	smallest, err := toSmallestUnit(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: code}, nil
}

// NewFromSmallestUnit creates a Money value from an amount already expressed
// in the smallest currency unit. Used for repository hydration.
func NewFromSmallestUnit(amount int64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, domain.Validation("currency must be a 3-letter code")
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero returns a zero-amount Money in the given currency.
func Zero(code currency.Code) (Money, error) {
	return NewFromSmallestUnit(0, code)
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 { return m.amount }

// AmountFloat returns the amount in the main currency unit.
func (m Money) AmountFloat() float64 {
	meta, err := currency.Get(m.currency)
	if err != nil {
		return float64(m.amount) / math.Pow10(currency.DefaultDecimals)
	}
	return float64(m.amount) / math.Pow10(meta.Decimals)
}

// Currency returns the currency of the Money value.
func (m Money) Currency() currency.Code { return m.currency }

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, domain.ErrCurrencyMismatch
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two Money values of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, domain.ErrCurrencyMismatch
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, domain.ErrCurrencyMismatch
	}
	return m.amount >= other.amount, nil
}

// Equals reports whether two Money values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// String renders the amount with the currency's decimal places.
func (m Money) String() string {
	decimals := currency.DefaultDecimals
	if meta, err := currency.Get(m.currency); err == nil {
		decimals = meta.Decimals
	}
	return fmt.Sprintf("%.*f %s", decimals, m.AmountFloat(), m.currency)
}

// toSmallestUnit converts a float64 amount to the smallest currency unit
// using big.Rat to avoid floating-point drift.
func toSmallestUnit(amount float64, code currency.Code) (int64, error) {
	meta, err := currency.Get(code)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.Split(amountStr, "."); len(parts) > 1 {
		if decimals := strings.TrimRight(parts[1], "0"); len(decimals) > meta.Decimals {
			return 0, domain.Validation(
				fmt.Sprintf("amount has more than %d decimal places", meta.Decimals))
		}
	}

	amountRat, ok := new(big.Rat).SetString(fmt.Sprintf("%.*f", meta.Decimals, amount))
	if !ok {
		return 0, domain.Validation(fmt.Sprintf("invalid amount: %f", amount))
	}
	multiplier := big.NewRat(int64(math.Pow10(meta.Decimals)), 1)
	smallestRat := new(big.Rat).Mul(amountRat, multiplier)
	if !smallestRat.IsInt() {
		return 0, domain.Validation(
			fmt.Sprintf("amount has more than %d decimal places", meta.Decimals))
	}
	smallest := smallestRat.Num()
	if !smallest.IsInt64() {
		return 0, domain.Validation("amount exceeds maximum safe integer value")
	}
	return smallest.Int64(), nil
}
