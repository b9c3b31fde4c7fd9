// Package account provides application services for opening, reading,
// updating, and soft-deleting accounts.
package account

import (
	"context"
	"log/slog"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Service exposes account use cases.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(uow repository.UnitOfWork, bus eventbus.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Create opens a zero-balance account in the given currency for an existing
// holder.
func (s *Service) Create(
	ctx context.Context,
	holderID string,
	code currency.Code,
	description string,
) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Holders().Get(ctx, holderID); err != nil {
			return err
		}
		a, err = account.New(holderID, code, description)
		if err != nil {
			return err
		}
		return uow.Accounts().Create(ctx, a)
	})
	if err != nil {
		s.logger.Error("account creation failed", "holder_id", holderID, "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, a.PullEvents()...)
	s.logger.Info("account created", "account_id", a.ID, "number", a.Number)
	return a, nil
}

// Get returns an account by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.uow.Accounts().Get(ctx, id)
}

// GetByNumber returns an account by its human-readable number.
func (s *Service) GetByNumber(ctx context.Context, number account.Number) (*account.Account, error) {
	return s.uow.Accounts().GetByNumber(ctx, number)
}

// ListByHolder returns all accounts belonging to a holder.
func (s *Service) ListByHolder(ctx context.Context, holderID string) ([]*account.Account, error) {
	return s.uow.Accounts().ListByHolder(ctx, holderID)
}

// UpdateDescription replaces the free-form account description.
func (s *Service) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err = a.UpdateDescription(description); err != nil {
			return err
		}
		return uow.Accounts().Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete soft-deletes an account. The record stays queryable; mutation is
// rejected from then on.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var a *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		a, err = uow.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		a.MarkAsDeleted()
		return uow.Accounts().Update(ctx, a)
	})
	if err != nil {
		s.logger.Error("account deletion failed", "account_id", id, "error", err)
		return err
	}
	s.bus.Publish(ctx, a.PullEvents()...)
	return nil
}
