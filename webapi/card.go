package webapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/dto"
	"github.com/fintechlab/bankapi/pkg/middleware"
	cardsvc "github.com/fintechlab/bankapi/pkg/service/card"
)

// RequestCardRequest is the payload for issuing a card.
type RequestCardRequest struct {
	AccountID  string `json:"account_id" validate:"required,uuid4"`
	HolderName string `json:"holder_name" validate:"required,max=100"`
	CVV        string `json:"cvv" validate:"required,len=3,numeric"`
	CardType   string `json:"card_type" validate:"required,oneof=Debit Credit Prepaid"`
}

// ValidateCVVRequest is the payload for checking a CVV.
type ValidateCVVRequest struct {
	Number string `json:"number" validate:"required"`
	CVV    string `json:"cvv" validate:"required,len=3,numeric"`
}

// CardRoutes registers the card endpoints.
func CardRoutes(app *fiber.App, cfg *config.App, cardSvc *cardsvc.Service) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	app.Post("/card", jwt, RequestCard(cardSvc))
	app.Get("/card/:id", jwt, GetCard(cardSvc))
	app.Post("/card/:id/block", jwt, BlockCard(cardSvc))
	app.Post("/card/:id/block/temporary", jwt, TemporarilyBlockCard(cardSvc))
	app.Post("/card/:id/unblock", jwt, UnblockCard(cardSvc))
	app.Delete("/card/:id", jwt, DeleteCard(cardSvc))
	app.Post("/card/validate-cvv", jwt, ValidateCVV(cardSvc))
	app.Get("/account/:id/cards", jwt, ListAccountCards(cardSvc))
}

// RequestCard issues a new card. The full card number appears only in this
// response.
func RequestCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RequestCardRequest](c)
		if err != nil {
			return nil
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		issued, err := svc.Request(c.UserContext(), accountID, input.HolderName, input.CVV, card.Type(input.CardType))
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Card issued",
			Data:    dto.FromIssuedCard(issued),
		})
	}
}

// GetCard returns a single card with a masked number.
func GetCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid card ID", err.Error())
		}
		found, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromCard(found)})
	}
}

// ListAccountCards returns all cards issued against an account.
func ListAccountCards(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		cards, err := svc.ListByAccount(c.UserContext(), accountID)
		if err != nil {
			return DomainError(c, err)
		}
		out := make([]*dto.CardRead, 0, len(cards))
		for _, crd := range cards {
			out = append(out, dto.FromCard(crd))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: out})
	}
}

// BlockCard permanently blocks a card.
func BlockCard(svc *cardsvc.Service) fiber.Handler {
	return cardMutation(svc, "Card blocked", (*cardsvc.Service).Block)
}

// TemporarilyBlockCard suspends a card.
func TemporarilyBlockCard(svc *cardsvc.Service) fiber.Handler {
	return cardMutation(svc, "Card temporarily blocked", (*cardsvc.Service).TemporarilyBlock)
}

// UnblockCard lifts a temporary block.
func UnblockCard(svc *cardsvc.Service) fiber.Handler {
	return cardMutation(svc, "Card unblocked", (*cardsvc.Service).Unblock)
}

// DeleteCard soft-deletes a card.
func DeleteCard(svc *cardsvc.Service) fiber.Handler {
	return cardMutation(svc, "Card deleted", (*cardsvc.Service).Delete)
}

// ValidateCVV reports whether a CVV matches the card's stored hash.
func ValidateCVV(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ValidateCVVRequest](c)
		if err != nil {
			return nil
		}
		number, err := card.ParseNumber(input.Number)
		if err != nil {
			return DomainError(c, err)
		}
		valid, err := svc.ValidateCVV(c.UserContext(), number, input.CVV)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: fiber.Map{"valid": valid}})
	}
}

func cardMutation(
	svc *cardsvc.Service,
	message string,
	op func(*cardsvc.Service, context.Context, uuid.UUID) error,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid card ID", err.Error())
		}
		if err := op(svc, c.UserContext(), id); err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: message})
	}
}
