package repository

import (
	"context"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a GORM-backed account repository.
func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return accountToDomain(&m)
}

// GetForUpdate loads the row with SELECT ... FOR UPDATE so concurrent
// transfers touching the same account serialize instead of losing updates.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m AccountModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return accountToDomain(&m)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number account.Number) (*account.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number.String()).Error; err != nil {
		return nil, MapGormError(err)
	}
	return accountToDomain(&m)
}

func (r *accountRepository) ListByHolder(ctx context.Context, holderID string) ([]*account.Account, error) {
	var models []AccountModel
	if err := r.db.WithContext(ctx).Where("holder_id = ?", holderID).Find(&models).Error; err != nil {
		return nil, MapGormError(err)
	}
	accounts := make([]*account.Account, 0, len(models))
	for i := range models {
		a, err := accountToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := accountToModel(a)
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	m := accountToModel(a)
	return MapGormError(r.db.WithContext(ctx).Model(&AccountModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"balance":     m.Balance,
			"description": m.Description,
			"is_deleted":  m.IsDeleted,
			"updated_at":  m.UpdatedAt,
		}).Error)
}

func accountToModel(a *account.Account) AccountModel {
	return AccountModel{
		ID:          a.ID,
		Number:      a.Number.String(),
		HolderID:    a.HolderID,
		Balance:     a.Balance.Amount(),
		Currency:    a.Currency().String(),
		Description: a.Description,
		IsDeleted:   a.IsDeleted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func accountToDomain(m *AccountModel) (*account.Account, error) {
	balance, err := money.NewFromSmallestUnit(m.Balance, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return &account.Account{
		ID:          m.ID,
		Number:      account.Number(m.Number),
		HolderID:    m.HolderID,
		Balance:     balance,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
