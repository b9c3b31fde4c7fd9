// Package repository defines the data-access contracts the domain services
// depend on. Implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/domain/transaction"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
	"github.com/google/uuid"
)

// AccountRepository defines data access for the Account aggregate.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetForUpdate loads an account with a row-level lock. Only valid
	// inside a unit of work; mutating flows must use it so concurrent
	// transfers touching the same account serialize.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, number account.Number) (*account.Account, error)
	ListByHolder(ctx context.Context, holderID string) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
}

// CardRepository defines data access for the Card aggregate.
type CardRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*card.Card, error)
	GetByCardNumber(ctx context.Context, number card.Number) (*card.Card, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*card.Card, error)
	Create(ctx context.Context, c *card.Card) error
	Update(ctx context.Context, c *card.Card) error
}

// TransactionRepository defines data access for the Transaction aggregate.
type TransactionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	// ListByAccount returns transactions touching the account as source or
	// target, created within [from, to].
	ListByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error)
	Create(ctx context.Context, t *transaction.Transaction) error
	Update(ctx context.Context, t *transaction.Transaction) error
}

// MoneyTransferRepository defines data access for the MoneyTransfer aggregate.
type MoneyTransferRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*transfer.MoneyTransfer, error)
	ListByCardNumber(ctx context.Context, number card.Number) ([]*transfer.MoneyTransfer, error)
	Create(ctx context.Context, mt *transfer.MoneyTransfer) error
	Update(ctx context.Context, mt *transfer.MoneyTransfer) error
}

// HolderRepository defines data access for the AccountHolder aggregate.
type HolderRepository interface {
	Get(ctx context.Context, id string) (*holder.AccountHolder, error)
	GetByEmail(ctx context.Context, email holder.EmailAddress) (*holder.AccountHolder, error)
	Create(ctx context.Context, h *holder.AccountHolder) error
	Update(ctx context.Context, h *holder.AccountHolder) error
}
