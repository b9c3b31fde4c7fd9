package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/dto"
	"github.com/fintechlab/bankapi/pkg/middleware"
	transfersvc "github.com/fintechlab/bankapi/pkg/service/transfer"
)

// CardTransferRequest is the payload for a card-to-card transfer.
type CardTransferRequest struct {
	SourceCardNumber string  `json:"source_card_number" validate:"required"`
	TargetCardNumber string  `json:"target_card_number" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Description      string  `json:"description" validate:"omitempty,max=255"`
}

// AccountTransferRequest is the payload for an account-to-account transfer.
type AccountTransferRequest struct {
	SourceAccountID string  `json:"source_account_id" validate:"required,uuid4"`
	TargetAccountID string  `json:"target_account_id" validate:"required,uuid4"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description" validate:"omitempty,max=255"`
}

// TransferRoutes registers the transfer endpoints.
func TransferRoutes(app *fiber.App, cfg *config.App, transferSvc *transfersvc.Service) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	app.Post("/transfer/card", jwt, ExecuteCardTransfer(transferSvc))
	app.Post("/transfer/account", jwt, ExecuteAccountTransfer(transferSvc))
	app.Get("/transfer/card/:number", jwt, ListTransfersByCard(transferSvc))
	app.Get("/transfer/:id", jwt, GetTransfer(transferSvc))
	app.Get("/transaction/:id", jwt, GetTransaction(transferSvc))
}

// ExecuteCardTransfer moves money between two cards atomically. The token
// subject must own the source card's account.
func ExecuteCardTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CardTransferRequest](c)
		if err != nil {
			return nil
		}
		mt, err := svc.ExecuteCardTransfer(
			c.UserContext(),
			middleware.CallerID(c),
			input.SourceCardNumber, input.TargetCardNumber,
			input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transfer completed",
			Data:    dto.FromTransfer(mt),
		})
	}
}

// ExecuteAccountTransfer moves money between two accounts atomically.
func ExecuteAccountTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AccountTransferRequest](c)
		if err != nil {
			return nil
		}
		sourceID, err := uuid.Parse(input.SourceAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid source account ID", err.Error())
		}
		targetID, err := uuid.Parse(input.TargetAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid target account ID", err.Error())
		}
		tx, err := svc.ExecuteAccountTransfer(c.UserContext(), sourceID, targetID, input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transfer completed",
			Data:    dto.FromTransaction(tx),
		})
	}
}

// ListTransfersByCard returns the transfers a card participated in.
func ListTransfersByCard(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := card.ParseNumber(c.Params("number"))
		if err != nil {
			return DomainError(c, err)
		}
		transfers, err := svc.ListTransfersByCard(c.UserContext(), number)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromTransfers(transfers)})
	}
}

// GetTransfer returns a money transfer record.
func GetTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transfer ID", err.Error())
		}
		mt, err := svc.GetMoneyTransfer(c.UserContext(), id)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromTransfer(mt)})
	}
}

// GetTransaction returns a transaction record.
func GetTransaction(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction ID", err.Error())
		}
		tx, err := svc.GetTransaction(c.UserContext(), id)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromTransaction(tx)})
	}
}
