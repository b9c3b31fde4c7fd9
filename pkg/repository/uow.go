package repository

import "context"

// UnitOfWork runs repository operations inside one transaction boundary.
//
// Do executes fn within a database transaction: if fn returns an error (or
// panics), everything written through the repositories obtained from the
// passed UnitOfWork is rolled back; if fn returns nil, the transaction
// commits. Multiple repository writes inside one Do call share the same
// transaction, so intermediate flushes never become visible before commit.
//
// The repository accessors return repositories bound to the active
// transaction. Calling them outside Do returns repositories bound to the
// base session (autocommit), which is fine for reads.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Cards() CardRepository
	Transactions() TransactionRepository
	MoneyTransfers() MoneyTransferRepository
	Holders() HolderRepository
}
