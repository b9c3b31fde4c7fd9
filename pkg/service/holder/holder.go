// Package holder provides application services for registering and managing
// account holders.
package holder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// UUIDGenerator issues holder IDs backed by random UUIDs. Safe to share
// across replicas, unlike a process-local counter.
type UUIDGenerator struct{}

// NewHolderID implements holder.IDGenerator.
func (UUIDGenerator) NewHolderID() string {
	return "HLD-" + uuid.NewString()
}

// Service exposes account holder use cases.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	gen    holder.IDGenerator
	logger *slog.Logger
}

// NewService creates a holder service.
func NewService(uow repository.UnitOfWork, bus eventbus.EventBus, gen holder.IDGenerator, logger *slog.Logger) *Service {
	if gen == nil {
		gen = UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, bus: bus, gen: gen, logger: logger}
}

// Register creates a new account holder. Email addresses are unique across
// holders.
func (s *Service) Register(
	ctx context.Context,
	firstName, lastName, email, phone string,
	dateOfBirth time.Time,
	address *holder.Address,
) (h *holder.AccountHolder, err error) {
	parsedEmail, err := holder.ParseEmail(email)
	if err != nil {
		return nil, err
	}
	parsedPhone, err := holder.ParsePhone(phone)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		existing, err := uow.Holders().GetByEmail(ctx, parsedEmail)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.Validation("email address is already registered")
		}
		h, err = holder.New(s.gen, firstName, lastName, parsedEmail, parsedPhone, dateOfBirth, address)
		if err != nil {
			return err
		}
		return uow.Holders().Create(ctx, h)
	})
	if err != nil {
		s.logger.Error("holder registration failed", "email", email, "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, h.PullEvents()...)
	s.logger.Info("holder registered", "holder_id", h.ID)
	return h, nil
}

// Get returns an account holder by ID.
func (s *Service) Get(ctx context.Context, id string) (*holder.AccountHolder, error) {
	return s.uow.Holders().Get(ctx, id)
}

// GetByEmail returns an account holder by email address.
func (s *Service) GetByEmail(ctx context.Context, email holder.EmailAddress) (*holder.AccountHolder, error) {
	return s.uow.Holders().GetByEmail(ctx, email)
}

// UpdateContactInfo replaces any non-nil contact fields on a holder.
func (s *Service) UpdateContactInfo(
	ctx context.Context,
	id string,
	email *holder.EmailAddress,
	phone *holder.PhoneNumber,
	address *holder.Address,
) (h *holder.AccountHolder, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		h, err = uow.Holders().Get(ctx, id)
		if err != nil {
			return err
		}
		if err = h.UpdateContactInfo(email, phone, address); err != nil {
			return err
		}
		return uow.Holders().Update(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Delete soft-deletes an account holder.
func (s *Service) Delete(ctx context.Context, id string) error {
	var h *holder.AccountHolder
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		h, err = uow.Holders().Get(ctx, id)
		if err != nil {
			return err
		}
		h.MarkAsDeleted()
		return uow.Holders().Update(ctx, h)
	})
	if err != nil {
		s.logger.Error("holder deletion failed", "holder_id", id, "error", err)
		return err
	}
	s.bus.Publish(ctx, h.PullEvents()...)
	return nil
}
