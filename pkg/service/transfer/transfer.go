// Package transfer provides the money-movement orchestration: card-to-card
// and account-to-account transfers, deposits and withdrawals. Every
// operation runs inside one unit of work; on any failure the whole
// transaction rolls back and no partial state survives.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/fintechlab/bankapi/pkg/domain/transaction"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Service orchestrates money movement across accounts.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewService creates a transfer service.
func NewService(uow repository.UnitOfWork, bus eventbus.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, bus: bus, logger: logger}
}

// ExecuteCardTransfer performs an atomic card-to-card transfer. Either all
// writes land (transfer record, transaction record, both balance updates,
// both status completions) or none do. callerHolderID must own the source
// card's account; pass the empty string for internal callers.
func (s *Service) ExecuteCardTransfer(
	ctx context.Context,
	callerHolderID string,
	sourceCardNumber, targetCardNumber string,
	amount float64,
	description string,
) (mt *transfer.MoneyTransfer, err error) {
	logger := s.logger.With("operation", "card_transfer")
	if amount <= 0 {
		return nil, domain.Validation("transfer amount must be positive")
	}
	sourceNumber, err := card.ParseNumber(sourceCardNumber)
	if err != nil {
		return nil, err
	}
	targetNumber, err := card.ParseNumber(targetCardNumber)
	if err != nil {
		return nil, err
	}

	var events []domain.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sourceCard, err := uow.Cards().GetByCardNumber(ctx, sourceNumber)
		if err != nil {
			return err
		}
		if !sourceCard.IsUsable() {
			return domain.InvalidOperation("source card is not usable (blocked, deleted, or expired)")
		}
		targetCard, err := uow.Cards().GetByCardNumber(ctx, targetNumber)
		if err != nil {
			return err
		}
		if !targetCard.IsUsable() {
			return domain.InvalidOperation("target card is not usable (blocked, deleted, or expired)")
		}
		if sourceCard.Number == targetCard.Number {
			return domain.Validation("source and target cards cannot be the same")
		}

		sourceAccount, err := uow.Accounts().GetForUpdate(ctx, sourceCard.AccountID)
		if err != nil {
			return err
		}
		if callerHolderID != "" && sourceAccount.HolderID != callerHolderID {
			return fmt.Errorf("%w: caller does not own the source card", domain.ErrUnauthorized)
		}
		targetAccount, err := uow.Accounts().GetForUpdate(ctx, targetCard.AccountID)
		if err != nil {
			return err
		}
		if sourceAccount.ID == targetAccount.ID {
			return domain.Validation("source and target accounts cannot be the same")
		}
		if sourceAccount.Currency() != targetAccount.Currency() {
			return domain.ErrCurrencyMismatch
		}

		transferAmount, err := money.New(amount, sourceAccount.Currency())
		if err != nil {
			return err
		}
		if !transferAmount.IsPositive() {
			return domain.Validation("transfer amount must be positive")
		}

		mt, err = transfer.New(
			sourceCard.Number, targetCard.Number,
			sourceAccount.ID, targetAccount.ID,
			transferAmount, description)
		if err != nil {
			return err
		}
		if err = uow.MoneyTransfers().Create(ctx, mt); err != nil {
			return err
		}

		tx, err := transaction.New(
			&sourceAccount.ID, &targetAccount.ID,
			transferAmount, transaction.TypeTransfer,
			"Card transfer from "+sourceCard.Number.Masked()+" to "+targetCard.Number.Masked())
		if err != nil {
			return err
		}
		if err = uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}

		if err = sourceAccount.Debit(transferAmount); err != nil {
			return err
		}
		if err = targetAccount.Credit(transferAmount); err != nil {
			return err
		}

		if err = mt.Execute(); err != nil {
			return err
		}
		if err = tx.Execute(); err != nil {
			return err
		}

		if err = uow.Accounts().Update(ctx, sourceAccount); err != nil {
			return err
		}
		if err = uow.Accounts().Update(ctx, targetAccount); err != nil {
			return err
		}
		if err = uow.MoneyTransfers().Update(ctx, mt); err != nil {
			return err
		}
		if err = uow.Transactions().Update(ctx, tx); err != nil {
			return err
		}

		events = collect(sourceAccount, targetAccount, mt, tx)
		return nil
	})
	if err != nil {
		logger.Error("card transfer failed", "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, events...)
	logger.Info("card transfer completed", "transfer_id", mt.ID, "status", mt.Status)
	return mt, nil
}

// ExecuteAccountTransfer performs an atomic account-to-account transfer and
// returns the completed transaction record.
func (s *Service) ExecuteAccountTransfer(
	ctx context.Context,
	sourceAccountID, targetAccountID uuid.UUID,
	amount float64,
	description string,
) (tx *transaction.Transaction, err error) {
	logger := s.logger.With("operation", "account_transfer")
	if amount <= 0 {
		return nil, domain.Validation("transfer amount must be positive")
	}
	if sourceAccountID == targetAccountID {
		return nil, domain.Validation("source and target accounts cannot be the same")
	}

	var events []domain.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sourceAccount, err := uow.Accounts().GetForUpdate(ctx, sourceAccountID)
		if err != nil {
			return err
		}
		targetAccount, err := uow.Accounts().GetForUpdate(ctx, targetAccountID)
		if err != nil {
			return err
		}
		if sourceAccount.Currency() != targetAccount.Currency() {
			return domain.ErrCurrencyMismatch
		}

		transferAmount, err := money.New(amount, sourceAccount.Currency())
		if err != nil {
			return err
		}

		tx, err = transaction.New(
			&sourceAccount.ID, &targetAccount.ID,
			transferAmount, transaction.TypeTransfer, description)
		if err != nil {
			return err
		}
		if err = uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}

		if err = sourceAccount.Debit(transferAmount); err != nil {
			return err
		}
		if err = targetAccount.Credit(transferAmount); err != nil {
			return err
		}
		if err = tx.Execute(); err != nil {
			return err
		}

		if err = uow.Accounts().Update(ctx, sourceAccount); err != nil {
			return err
		}
		if err = uow.Accounts().Update(ctx, targetAccount); err != nil {
			return err
		}
		if err = uow.Transactions().Update(ctx, tx); err != nil {
			return err
		}

		events = collect(sourceAccount, targetAccount, tx)
		return nil
	})
	if err != nil {
		logger.Error("account transfer failed", "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, events...)
	logger.Info("account transfer completed", "transaction_id", tx.ID)
	return tx, nil
}

// Deposit credits an account and records a completed Deposit transaction.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount float64,
	description string,
) (tx *transaction.Transaction, err error) {
	return s.singleAccountMovement(ctx, accountID, amount, description, transaction.TypeDeposit)
}

// Withdraw debits an account and records a completed Withdrawal transaction.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uuid.UUID,
	amount float64,
	description string,
) (tx *transaction.Transaction, err error) {
	return s.singleAccountMovement(ctx, accountID, amount, description, transaction.TypeWithdrawal)
}

func (s *Service) singleAccountMovement(
	ctx context.Context,
	accountID uuid.UUID,
	amount float64,
	description string,
	txType transaction.Type,
) (tx *transaction.Transaction, err error) {
	if amount <= 0 {
		return nil, domain.Validation("amount must be positive")
	}
	var events []domain.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		movement, err := money.New(amount, acct.Currency())
		if err != nil {
			return err
		}

		switch txType {
		case transaction.TypeDeposit:
			tx, err = transaction.New(nil, &acct.ID, movement, txType, description)
			if err != nil {
				return err
			}
			err = acct.Credit(movement)
		case transaction.TypeWithdrawal:
			tx, err = transaction.New(&acct.ID, nil, movement, txType, description)
			if err != nil {
				return err
			}
			err = acct.Debit(movement)
		default:
			return domain.Validation("unsupported movement type: " + string(txType))
		}
		if err != nil {
			return err
		}

		if err = uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		if err = tx.Execute(); err != nil {
			return err
		}
		if err = uow.Accounts().Update(ctx, acct); err != nil {
			return err
		}
		if err = uow.Transactions().Update(ctx, tx); err != nil {
			return err
		}

		events = collect(acct, tx)
		return nil
	})
	if err != nil {
		s.logger.Error("movement failed", "type", txType, "account_id", accountID, "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, events...)
	return tx, nil
}

// GetTransaction returns a transaction by ID.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return s.uow.Transactions().Get(ctx, id)
}

// GetMoneyTransfer returns a money transfer by ID.
func (s *Service) GetMoneyTransfer(ctx context.Context, id uuid.UUID) (*transfer.MoneyTransfer, error) {
	return s.uow.MoneyTransfers().Get(ctx, id)
}

// ListTransfersByCard returns the money transfers a card participated in,
// as source or target.
func (s *Service) ListTransfersByCard(ctx context.Context, number card.Number) ([]*transfer.MoneyTransfer, error) {
	return s.uow.MoneyTransfers().ListByCardNumber(ctx, number)
}

// GetStatement returns the transactions touching an account within the
// given date range.
func (s *Service) GetStatement(
	ctx context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]*transaction.Transaction, error) {
	if _, err := s.uow.Accounts().Get(ctx, accountID); err != nil {
		return nil, err
	}
	return s.uow.Transactions().ListByAccount(ctx, accountID, from, to)
}

// eventSource is any aggregate with an event outbox.
type eventSource interface {
	PullEvents() []domain.Event
}

// collect drains the outboxes of all given aggregates, preserving order.
func collect(sources ...eventSource) []domain.Event {
	var events []domain.Event
	for _, src := range sources {
		events = append(events, src.PullEvents()...)
	}
	return events
}
