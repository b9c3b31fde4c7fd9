package repository

import (
	"context"
	"time"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/fintechlab/bankapi/pkg/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a GORM-backed transaction repository.
func NewTransactionRepository(db *gorm.DB) *transactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var m TransactionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return transactionToDomain(&m)
}

func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]*transaction.Transaction, error) {
	var models []TransactionModel
	err := r.db.WithContext(ctx).
		Where("(source_account_id = ? OR target_account_id = ?)", accountID, accountID).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	txs := make([]*transaction.Transaction, 0, len(models))
	for i := range models {
		t, err := transactionToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	m := transactionToModel(t)
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *transactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	m := transactionToModel(t)
	return MapGormError(r.db.WithContext(ctx).Model(&TransactionModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"status":      m.Status,
			"description": m.Description,
			"updated_at":  m.UpdatedAt,
		}).Error)
}

func transactionToModel(t *transaction.Transaction) TransactionModel {
	return TransactionModel{
		ID:              t.ID,
		SourceAccountID: t.SourceAccountID,
		TargetAccountID: t.TargetAccountID,
		Amount:          t.Amount.Amount(),
		Currency:        t.Amount.Currency().String(),
		TxType:          string(t.TxType),
		Status:          string(t.Status),
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func transactionToDomain(m *TransactionModel) (*transaction.Transaction, error) {
	amount, err := money.NewFromSmallestUnit(m.Amount, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return &transaction.Transaction{
		ID:              m.ID,
		SourceAccountID: m.SourceAccountID,
		TargetAccountID: m.TargetAccountID,
		Amount:          amount,
		TxType:          transaction.Type(m.TxType),
		Status:          transaction.Status(m.Status),
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}
