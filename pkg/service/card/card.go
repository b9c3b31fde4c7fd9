// Package card provides application services for issuing cards and driving
// the card block lifecycle.
package card

import (
	"context"
	"log/slog"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Service exposes card use cases.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewService creates a card service.
func NewService(uow repository.UnitOfWork, bus eventbus.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Request issues a new card against an existing, non-deleted account. The
// generated card number is returned once in full; responses elsewhere only
// carry the masked form.
func (s *Service) Request(
	ctx context.Context,
	accountID uuid.UUID,
	holderName, cvv string,
	cardType card.Type,
) (c *card.Card, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().Get(ctx, accountID)
		if err != nil {
			return err
		}
		if acct.IsDeleted {
			return domain.InvalidOperation("cannot issue a card for a deleted account")
		}
		c, err = card.New(accountID, holderName, cvv, cardType)
		if err != nil {
			return err
		}
		return uow.Cards().Create(ctx, c)
	})
	if err != nil {
		s.logger.Error("card request failed", "account_id", accountID, "error", err)
		return nil, err
	}
	s.bus.Publish(ctx, c.PullEvents()...)
	s.logger.Info("card issued", "card_id", c.ID, "number", c.Number.Masked())
	return c, nil
}

// Get returns a card by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	return s.uow.Cards().Get(ctx, id)
}

// GetByNumber returns a card by its full card number.
func (s *Service) GetByNumber(ctx context.Context, number card.Number) (*card.Card, error) {
	return s.uow.Cards().GetByCardNumber(ctx, number)
}

// ListByAccount returns all cards issued against an account.
func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*card.Card, error) {
	return s.uow.Cards().ListByAccount(ctx, accountID)
}

// Block permanently blocks a card. Irreversible.
func (s *Service) Block(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, (*card.Card).Block)
}

// TemporarilyBlock suspends a card until Unblock is called.
func (s *Service) TemporarilyBlock(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, (*card.Card).TemporarilyBlock)
}

// Unblock lifts a temporary block.
func (s *Service) Unblock(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, (*card.Card).Unblock)
}

// Delete soft-deletes a card.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, func(c *card.Card) error {
		c.MarkAsDeleted()
		return nil
	})
}

// ValidateCVV reports whether the given CVV matches the card's stored hash.
func (s *Service) ValidateCVV(ctx context.Context, number card.Number, cvv string) (bool, error) {
	c, err := s.uow.Cards().GetByCardNumber(ctx, number)
	if err != nil {
		return false, err
	}
	return c.ValidateCVV(cvv), nil
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, op func(*card.Card) error) error {
	var c *card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		c, err = uow.Cards().Get(ctx, id)
		if err != nil {
			return err
		}
		if err = op(c); err != nil {
			return err
		}
		return uow.Cards().Update(ctx, c)
	})
	if err != nil {
		s.logger.Error("card mutation failed", "card_id", id, "error", err)
		return err
	}
	s.bus.Publish(ctx, c.PullEvents()...)
	return nil
}
