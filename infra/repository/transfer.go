package repository

import (
	"context"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type moneyTransferRepository struct {
	db *gorm.DB
}

// NewMoneyTransferRepository creates a GORM-backed money transfer repository.
func NewMoneyTransferRepository(db *gorm.DB) *moneyTransferRepository {
	return &moneyTransferRepository{db: db}
}

func (r *moneyTransferRepository) Get(ctx context.Context, id uuid.UUID) (*transfer.MoneyTransfer, error) {
	var m MoneyTransferModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return transferToDomain(&m)
}

func (r *moneyTransferRepository) ListByCardNumber(ctx context.Context, number card.Number) ([]*transfer.MoneyTransfer, error) {
	var models []MoneyTransferModel
	err := r.db.WithContext(ctx).
		Where("source_card_number = ? OR target_card_number = ?", number.String(), number.String()).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	transfers := make([]*transfer.MoneyTransfer, 0, len(models))
	for i := range models {
		mt, err := transferToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, mt)
	}
	return transfers, nil
}

func (r *moneyTransferRepository) Create(ctx context.Context, mt *transfer.MoneyTransfer) error {
	m := transferToModel(mt)
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *moneyTransferRepository) Update(ctx context.Context, mt *transfer.MoneyTransfer) error {
	m := transferToModel(mt)
	return MapGormError(r.db.WithContext(ctx).Model(&MoneyTransferModel{}).
		Where("id = ?", mt.ID).
		Updates(map[string]any{
			"status":         m.Status,
			"failure_reason": m.FailureReason,
			"is_deleted":     m.IsDeleted,
			"updated_at":     m.UpdatedAt,
		}).Error)
}

func transferToModel(mt *transfer.MoneyTransfer) MoneyTransferModel {
	return MoneyTransferModel{
		ID:               mt.ID,
		SourceCardNumber: mt.SourceCardNumber.String(),
		TargetCardNumber: mt.TargetCardNumber.String(),
		SourceAccountID:  mt.SourceAccountID,
		TargetAccountID:  mt.TargetAccountID,
		Amount:           mt.Amount.Amount(),
		Currency:         mt.Amount.Currency().String(),
		Status:           string(mt.Status),
		Description:      mt.Description,
		FailureReason:    mt.FailureReason,
		IsDeleted:        mt.IsDeleted,
		CreatedAt:        mt.CreatedAt,
		UpdatedAt:        mt.UpdatedAt,
	}
}

func transferToDomain(m *MoneyTransferModel) (*transfer.MoneyTransfer, error) {
	amount, err := money.NewFromSmallestUnit(m.Amount, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return &transfer.MoneyTransfer{
		ID:               m.ID,
		SourceCardNumber: card.Number(m.SourceCardNumber),
		TargetCardNumber: card.Number(m.TargetCardNumber),
		SourceAccountID:  m.SourceAccountID,
		TargetAccountID:  m.TargetAccountID,
		Amount:           amount,
		Status:           transfer.Status(m.Status),
		Description:      m.Description,
		FailureReason:    m.FailureReason,
		IsDeleted:        m.IsDeleted,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
