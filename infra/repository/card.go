package repository

import (
	"context"

	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a GORM-backed card repository.
func NewCardRepository(db *gorm.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	var m CardModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return cardToDomain(&m), nil
}

func (r *cardRepository) GetByCardNumber(ctx context.Context, number card.Number) (*card.Card, error) {
	var m CardModel
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number.String()).Error; err != nil {
		return nil, MapGormError(err)
	}
	return cardToDomain(&m), nil
}

func (r *cardRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*card.Card, error) {
	var models []CardModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&models).Error; err != nil {
		return nil, MapGormError(err)
	}
	cards := make([]*card.Card, 0, len(models))
	for i := range models {
		cards = append(cards, cardToDomain(&models[i]))
	}
	return cards, nil
}

func (r *cardRepository) Create(ctx context.Context, c *card.Card) error {
	m := cardToModel(c)
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *cardRepository) Update(ctx context.Context, c *card.Card) error {
	m := cardToModel(c)
	return MapGormError(r.db.WithContext(ctx).Model(&CardModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"is_blocked":      m.IsBlocked,
			"is_temp_blocked": m.IsTempBlocked,
			"is_deleted":      m.IsDeleted,
			"updated_at":      m.UpdatedAt,
		}).Error)
}

func cardToModel(c *card.Card) CardModel {
	return CardModel{
		ID:             c.ID,
		Number:         c.Number.String(),
		AccountID:      c.AccountID,
		HolderName:     c.HolderName,
		ExpirationDate: c.ExpirationDate,
		CVVHash:        c.CVVHash,
		IsBlocked:      c.IsBlocked,
		IsTempBlocked:  c.IsTempBlocked,
		CardType:       string(c.CardType),
		IsDeleted:      c.IsDeleted,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func cardToDomain(m *CardModel) *card.Card {
	return &card.Card{
		ID:             m.ID,
		Number:         card.Number(m.Number),
		AccountID:      m.AccountID,
		HolderName:     m.HolderName,
		ExpirationDate: m.ExpirationDate,
		CVVHash:        m.CVVHash,
		IsBlocked:      m.IsBlocked,
		IsTempBlocked:  m.IsTempBlocked,
		CardType:       card.Type(m.CardType),
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
