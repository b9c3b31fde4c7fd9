package repository

import (
	"context"

	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"gorm.io/gorm"
)

type holderRepository struct {
	db *gorm.DB
}

// NewHolderRepository creates a GORM-backed account holder repository.
func NewHolderRepository(db *gorm.DB) *holderRepository {
	return &holderRepository{db: db}
}

func (r *holderRepository) Get(ctx context.Context, id string) (*holder.AccountHolder, error) {
	var m HolderModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return holderToDomain(&m), nil
}

func (r *holderRepository) GetByEmail(ctx context.Context, email holder.EmailAddress) (*holder.AccountHolder, error) {
	var m HolderModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email.String()).Error; err != nil {
		return nil, MapGormError(err)
	}
	return holderToDomain(&m), nil
}

func (r *holderRepository) Create(ctx context.Context, h *holder.AccountHolder) error {
	m := holderToModel(h)
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *holderRepository) Update(ctx context.Context, h *holder.AccountHolder) error {
	m := holderToModel(h)
	return MapGormError(r.db.WithContext(ctx).Model(&HolderModel{}).
		Where("id = ?", h.ID).
		Updates(map[string]any{
			"email":      m.Email,
			"phone":      m.Phone,
			"street":     m.Street,
			"city":       m.City,
			"zip_code":   m.ZipCode,
			"country":    m.Country,
			"is_deleted": m.IsDeleted,
			"updated_at": m.UpdatedAt,
		}).Error)
}

func holderToModel(h *holder.AccountHolder) HolderModel {
	m := HolderModel{
		ID:          h.ID,
		FirstName:   h.FirstName,
		LastName:    h.LastName,
		Email:       h.Email.String(),
		Phone:       h.Phone.String(),
		DateOfBirth: h.DateOfBirth,
		IsDeleted:   h.IsDeleted,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if h.Address != nil {
		m.Street = h.Address.Street
		m.City = h.Address.City
		m.ZipCode = h.Address.ZipCode
		m.Country = h.Address.Country
	}
	return m
}

func holderToDomain(m *HolderModel) *holder.AccountHolder {
	h := &holder.AccountHolder{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       holder.EmailAddress(m.Email),
		Phone:       holder.PhoneNumber(m.Phone),
		DateOfBirth: m.DateOfBirth,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Street != "" || m.City != "" || m.ZipCode != "" || m.Country != "" {
		h.Address = &holder.Address{
			Street:  m.Street,
			City:    m.City,
			ZipCode: m.ZipCode,
			Country: m.Country,
		}
	}
	return h
}
