package repository

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel is the accounts table row.
type AccountModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"type:varchar(12);uniqueIndex;not null"`
	HolderID    string    `gorm:"type:varchar(64);index;not null"`
	Balance     int64     `gorm:"not null;default:0"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Description string
	IsDeleted   bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for AccountModel.
func (AccountModel) TableName() string { return "accounts" }

// CardModel is the cards table row. The full card number is stored because
// transfers address cards by number; responses outside issuance only ever
// carry the masked form.
type CardModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number         string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	AccountID      uuid.UUID `gorm:"type:uuid;index;not null"`
	HolderName     string    `gorm:"not null"`
	ExpirationDate time.Time `gorm:"not null"`
	CVVHash        string    `gorm:"column:cvv_hash;not null"`
	IsBlocked      bool      `gorm:"not null;default:false"`
	IsTempBlocked  bool      `gorm:"not null;default:false"`
	CardType       string    `gorm:"type:varchar(16);not null"`
	IsDeleted      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for CardModel.
func (CardModel) TableName() string { return "cards" }

// TransactionModel is the transactions table row. Source and target are
// nullable: deposits have no source, withdrawals no target.
type TransactionModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SourceAccountID *uuid.UUID `gorm:"type:uuid;index"`
	TargetAccountID *uuid.UUID `gorm:"type:uuid;index"`
	Amount          int64      `gorm:"not null"`
	Currency        string     `gorm:"type:varchar(3);not null"`
	TxType          string     `gorm:"type:varchar(16);not null"`
	Status          string     `gorm:"type:varchar(16);not null"`
	Description     string
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for TransactionModel.
func (TransactionModel) TableName() string { return "transactions" }

// MoneyTransferModel is the money_transfers table row.
type MoneyTransferModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SourceCardNumber string    `gorm:"type:varchar(16);index;not null"`
	TargetCardNumber string    `gorm:"type:varchar(16);index;not null"`
	SourceAccountID  uuid.UUID `gorm:"type:uuid;not null"`
	TargetAccountID  uuid.UUID `gorm:"type:uuid;not null"`
	Amount           int64     `gorm:"not null"`
	Currency         string    `gorm:"type:varchar(3);not null"`
	Status           string    `gorm:"type:varchar(16);not null"`
	Description      string
	FailureReason    string
	IsDeleted        bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for MoneyTransferModel.
func (MoneyTransferModel) TableName() string { return "money_transfers" }

// HolderModel is the account_holders table row.
type HolderModel struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	FirstName   string `gorm:"not null"`
	LastName    string `gorm:"not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Phone       string
	DateOfBirth time.Time `gorm:"not null"`
	Street      string
	City        string
	ZipCode     string
	Country     string
	IsDeleted   bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for HolderModel.
func (HolderModel) TableName() string { return "account_holders" }

// AllModels lists every model for migration.
func AllModels() []any {
	return []any{
		&AccountModel{},
		&CardModel{},
		&TransactionModel{},
		&MoneyTransferModel{},
		&HolderModel{},
	}
}
