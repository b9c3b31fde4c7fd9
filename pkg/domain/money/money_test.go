package money_test

import (
	"testing"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	m, err := money.New(100.50, "USD")
	require.NoError(err)
	assert.Equal(int64(10050), m.Amount())
	assert.InEpsilon(100.50, m.AmountFloat(), 0.0001)
	assert.Equal("USD", m.Currency().String())
}

func TestNewDefaultsCurrency(t *testing.T) {
	t.Parallel()
	m, err := money.New(1, "")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency().String())
}

func TestNewRejectsExcessDecimals(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := money.New(10.123, "USD")
	assert.ErrorIs(err, domain.ErrValidation)

	// JPY has zero decimal places
	_, err = money.New(10.5, "JPY")
	assert.ErrorIs(err, domain.ErrValidation)
}

func TestZeroDecimalCurrency(t *testing.T) {
	t.Parallel()
	m, err := money.New(500, "JPY")
	require.NoError(t, err)
	assert.Equal(t, int64(500), m.Amount())
}

func TestThreeDecimalCurrency(t *testing.T) {
	t.Parallel()
	m, err := money.New(1.234, "KWD")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), m.Amount())
}

func TestAddSubtract(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := money.New(100, "USD")
	require.NoError(err)
	b, err := money.New(40.25, "USD")
	require.NoError(err)

	sum, err := a.Add(b)
	require.NoError(err)
	assert.Equal(int64(14025), sum.Amount())

	diff, err := a.Subtract(b)
	require.NoError(err)
	assert.Equal(int64(5975), diff.Amount())
}

func TestCurrencyMismatch(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	usd, err := money.New(10, "USD")
	require.NoError(err)
	eur, err := money.New(10, "EUR")
	require.NoError(err)

	_, err = usd.Add(eur)
	assert.ErrorIs(err, domain.ErrCurrencyMismatch)
	_, err = usd.Subtract(eur)
	assert.ErrorIs(err, domain.ErrCurrencyMismatch)
	_, err = usd.GreaterThanOrEqual(eur)
	assert.ErrorIs(err, domain.ErrCurrencyMismatch)
	// A currency mismatch is a kind of invalid operation
	assert.ErrorIs(domain.ErrCurrencyMismatch, domain.ErrInvalidOperation)
}

func TestGreaterThanOrEqual(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := money.New(100, "USD")
	require.NoError(err)
	b, err := money.New(100, "USD")
	require.NoError(err)
	c, err := money.New(100.01, "USD")
	require.NoError(err)

	got, err := a.GreaterThanOrEqual(b)
	require.NoError(err)
	assert.True(got)

	got, err = a.GreaterThanOrEqual(c)
	require.NoError(err)
	assert.False(got)
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	pos, _ := money.New(1, "USD")
	neg, _ := money.NewFromSmallestUnit(-5, "USD")
	zero, _ := money.Zero("USD")

	assert.True(pos.IsPositive())
	assert.True(neg.IsNegative())
	assert.True(zero.IsZero())
	assert.False(zero.IsPositive())
}

func TestString(t *testing.T) {
	t.Parallel()
	m, err := money.New(12.30, "USD")
	require.NoError(t, err)
	assert.Equal(t, "12.30 USD", m.String())
}
