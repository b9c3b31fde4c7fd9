package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func mustMoney(t *testing.T, amount float64, code string) money.Money {
	t.Helper()
	m, err := money.New(amount, currency.Code(code))
	require.NoError(t, err)
	return m
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "daily spending")
	require.NoError(err)
	assert.NotEmpty(a.ID)
	assert.True(a.Balance.IsZero())
	assert.Equal("USD", a.Currency().String())

	num, err := account.ParseNumber(a.Number.String())
	require.NoError(err)
	assert.Equal(a.Number, num)

	events := a.PullEvents()
	require.Len(events, 1)
	assert.Equal("account.created", events[0].Type())
	assert.Empty(a.PullEvents(), "events drain on pull")
}

func TestNewAccountValidation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := account.New("", "USD", "")
	assert.ErrorIs(err, domain.ErrValidation)

	_, err = account.New("HLD-1", "us", "")
	assert.ErrorIs(err, domain.ErrValidation)

	_, err = account.New("HLD-1", "XXX", "")
	assert.ErrorIs(err, domain.ErrValidation)
}

func TestCreditAndDebit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)
	a.PullEvents()

	require.NoError(a.Credit(mustMoney(t, 100, "USD")))
	assert.Equal(int64(10000), a.Balance.Amount())

	require.NoError(a.Debit(mustMoney(t, 40.50, "USD")))
	assert.Equal(int64(5950), a.Balance.Amount())

	events := a.PullEvents()
	require.Len(events, 2)
	credit := events[0].(account.BalanceChangedEvent)
	assert.Equal("Credit", credit.Operation)
	assert.Equal(int64(0), credit.PreviousBalance)
	assert.Equal(int64(10000), credit.NewBalance)
	debit := events[1].(account.BalanceChangedEvent)
	assert.Equal("Debit", debit.Operation)
	assert.Equal(int64(5950), debit.NewBalance)
}

func TestDebitInsufficientBalance(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)
	require.NoError(a.Credit(mustMoney(t, 50, "USD")))

	err = a.Debit(mustMoney(t, 50.01, "USD"))
	assert.ErrorIs(err, domain.ErrInsufficientBalance)

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(err, &insufficient)
	assert.Equal(int64(5000), insufficient.Available)
	assert.Equal(int64(5001), insufficient.Required)

	// balance untouched by the failed debit
	assert.Equal(int64(5000), a.Balance.Amount())
}

func TestDebitExactBalance(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)
	require.NoError(a.Credit(mustMoney(t, 25, "USD")))
	require.NoError(a.Debit(mustMoney(t, 25, "USD")))
	require.True(a.Balance.IsZero())
}

func TestCurrencyMismatchRejected(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)

	assert.ErrorIs(a.Credit(mustMoney(t, 10, "EUR")), domain.ErrCurrencyMismatch)
	assert.ErrorIs(a.Debit(mustMoney(t, 10, "EUR")), domain.ErrCurrencyMismatch)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)

	zero, err := money.Zero("USD")
	require.NoError(err)
	assert.ErrorIs(a.Credit(zero), domain.ErrValidation)
	assert.ErrorIs(a.Debit(zero), domain.ErrValidation)
}

func TestDeletedAccountRejectsMutation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a, err := account.New("HLD-1", "USD", "")
	require.NoError(err)
	a.MarkAsDeleted()
	assert.True(a.IsDeleted)

	assert.ErrorIs(a.Credit(mustMoney(t, 10, "USD")), domain.ErrInvalidOperation)
	assert.ErrorIs(a.Debit(mustMoney(t, 10, "USD")), domain.ErrInvalidOperation)
	assert.ErrorIs(a.UpdateDescription("x"), domain.ErrInvalidOperation)
}

func TestGenerateNumberFormat(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		n := account.GenerateNumber()
		_, err := account.ParseNumber(n.String())
		require.NoError(t, err, "generated number %q must parse", n)
	}
}
