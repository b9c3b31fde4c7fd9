package transfer_test

import (
	"testing"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransfer(t *testing.T) *transfer.MoneyTransfer {
	t.Helper()
	amount, err := money.New(25, "USD")
	require.NoError(t, err)
	mt, err := transfer.New(
		card.GenerateNumber(), card.GenerateNumber(),
		uuid.New(), uuid.New(),
		amount, "lunch")
	require.NoError(t, err)
	mt.PullEvents()
	return mt
}

func TestNewTransfer(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	source, target := card.GenerateNumber(), card.GenerateNumber()
	amount, err := money.New(25, "USD")
	require.NoError(err)

	mt, err := transfer.New(source, target, uuid.New(), uuid.New(), amount, "lunch")
	require.NoError(err)
	assert.Equal(transfer.StatusPending, mt.Status)
	assert.Empty(mt.FailureReason)

	events := mt.PullEvents()
	require.Len(events, 1)
	created := events[0].(transfer.CreatedEvent)
	assert.Equal("transfer.created", created.Type())
	// events carry only masked card numbers
	assert.NotEqual(source.String(), created.SourceCardMasked)
	assert.Contains(created.SourceCardMasked, "****")
}

func TestNewTransferValidation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	source, target := card.GenerateNumber(), card.GenerateNumber()
	sourceAcct, targetAcct := uuid.New(), uuid.New()
	amount, err := money.New(25, "USD")
	require.NoError(err)
	zero, err := money.Zero("USD")
	require.NoError(err)

	_, err = transfer.New("", target, sourceAcct, targetAcct, amount, "")
	assert.ErrorIs(err, domain.ErrValidation)
	_, err = transfer.New(source, "", sourceAcct, targetAcct, amount, "")
	assert.ErrorIs(err, domain.ErrValidation)
	_, err = transfer.New(source, source, sourceAcct, targetAcct, amount, "")
	assert.ErrorIs(err, domain.ErrValidation)
	_, err = transfer.New(source, target, uuid.Nil, targetAcct, amount, "")
	assert.ErrorIs(err, domain.ErrValidation)
	_, err = transfer.New(source, target, sourceAcct, sourceAcct, amount, "")
	assert.ErrorIs(err, domain.ErrValidation)
	_, err = transfer.New(source, target, sourceAcct, targetAcct, zero, "")
	assert.ErrorIs(err, domain.ErrValidation)
}

func TestExecuteOnlyFromPending(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mt := newTransfer(t)
	require.NoError(mt.Execute())
	assert.Equal(transfer.StatusCompleted, mt.Status)

	assert.ErrorIs(mt.Execute(), domain.ErrInvalidOperation)
	assert.ErrorIs(mt.Fail("late"), domain.ErrInvalidOperation)

	events := mt.PullEvents()
	require.Len(events, 1)
	assert.Equal("transfer.completed", events[0].Type())
}

func TestFailOnlyFromPending(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mt := newTransfer(t)
	require.NoError(mt.Fail("card blocked"))
	assert.Equal(transfer.StatusFailed, mt.Status)
	assert.Equal("card blocked", mt.FailureReason)

	assert.ErrorIs(mt.Execute(), domain.ErrInvalidOperation)
	assert.ErrorIs(mt.Fail("again"), domain.ErrInvalidOperation)
}

func TestDeletedTransferRejectsLifecycle(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mt := newTransfer(t)
	mt.IsDeleted = true
	assert.ErrorIs(mt.Execute(), domain.ErrInvalidOperation)
	assert.ErrorIs(mt.Fail("x"), domain.ErrInvalidOperation)
}
