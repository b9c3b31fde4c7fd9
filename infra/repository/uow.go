// Package repository implements the data-access contracts from
// pkg/repository on top of GORM and PostgreSQL.
package repository

import (
	"context"

	repo "github.com/fintechlab/bankapi/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories obtained from the UoW passed to Do share
// the transaction session, so a multi-aggregate write is atomic: commit on
// nil return, full rollback on error or panic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, passing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the active transaction if there is one, otherwise the
// base session (autocommit reads).
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Accounts returns an account repository bound to the current session.
func (u *UoW) Accounts() repo.AccountRepository {
	return NewAccountRepository(u.session())
}

// Cards returns a card repository bound to the current session.
func (u *UoW) Cards() repo.CardRepository {
	return NewCardRepository(u.session())
}

// Transactions returns a transaction repository bound to the current session.
func (u *UoW) Transactions() repo.TransactionRepository {
	return NewTransactionRepository(u.session())
}

// MoneyTransfers returns a money transfer repository bound to the current session.
func (u *UoW) MoneyTransfers() repo.MoneyTransferRepository {
	return NewMoneyTransferRepository(u.session())
}

// Holders returns an account holder repository bound to the current session.
func (u *UoW) Holders() repo.HolderRepository {
	return NewHolderRepository(u.session())
}
