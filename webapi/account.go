package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/fintechlab/bankapi/pkg/dto"
	"github.com/fintechlab/bankapi/pkg/middleware"
	accountsvc "github.com/fintechlab/bankapi/pkg/service/account"
	transfersvc "github.com/fintechlab/bankapi/pkg/service/transfer"
)

// CreateAccountRequest is the payload for opening an account.
type CreateAccountRequest struct {
	HolderID    string `json:"holder_id" validate:"required"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// UpdateDescriptionRequest is the payload for changing an account description.
type UpdateDescriptionRequest struct {
	Description string `json:"description" validate:"max=255"`
}

// MovementRequest is the payload for deposits and withdrawals.
type MovementRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=255"`
}

// AccountRoutes registers the account endpoints.
func AccountRoutes(app *fiber.App, cfg *config.App, accountSvc *accountsvc.Service, transferSvc *transfersvc.Service) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	app.Post("/account", jwt, CreateAccount(accountSvc))
	app.Get("/account/:id", jwt, GetAccount(accountSvc))
	app.Put("/account/:id/description", jwt, UpdateAccountDescription(accountSvc))
	app.Delete("/account/:id", jwt, DeleteAccount(accountSvc))
	app.Get("/account/:id/statement", jwt, GetStatement(transferSvc))
	app.Post("/account/:id/deposit", jwt, Deposit(transferSvc))
	app.Post("/account/:id/withdraw", jwt, Withdraw(transferSvc))
	app.Get("/holder/:id/accounts", jwt, ListHolderAccounts(accountSvc))
}

// CreateAccount opens a zero-balance account for a holder.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateAccountRequest](c)
		if err != nil {
			return nil
		}
		code := currency.Code(input.Currency)
		if input.Currency == "" {
			code = currency.DefaultCurrency
		}
		a, err := svc.Create(c.UserContext(), input.HolderID, code, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account created",
			Data:    dto.FromAccount(a),
		})
	}
}

// GetAccount returns a single account.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromAccount(a)})
	}
}

// UpdateAccountDescription replaces the account description.
func UpdateAccountDescription(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		input, err := BindAndValidate[UpdateDescriptionRequest](c)
		if err != nil {
			return nil
		}
		a, err := svc.UpdateDescription(c.UserContext(), id, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account updated", Data: dto.FromAccount(a)})
	}
}

// DeleteAccount soft-deletes an account.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account deleted"})
	}
}

// ListHolderAccounts returns all accounts of a holder.
func ListHolderAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.ListByHolder(c.UserContext(), c.Params("id"))
		if err != nil {
			return DomainError(c, err)
		}
		out := make([]*dto.AccountRead, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, dto.FromAccount(a))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: out})
	}
}

// GetStatement returns the account transactions in a date range. Defaults to
// the last 30 days.
func GetStatement(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -30)
		if v := c.Query("from"); v != "" {
			if from, err = time.Parse(time.RFC3339, v); err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid 'from' date", err.Error())
			}
		}
		if v := c.Query("to"); v != "" {
			if to, err = time.Parse(time.RFC3339, v); err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid 'to' date", err.Error())
			}
		}
		txs, err := svc.GetStatement(c.UserContext(), id, from, to)
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromTransactions(txs)})
	}
}

// Deposit credits an account.
func Deposit(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		input, err := BindAndValidate[MovementRequest](c)
		if err != nil {
			return nil
		}
		tx, err := svc.Deposit(c.UserContext(), id, input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Deposit completed",
			Data:    dto.FromTransaction(tx),
		})
	}
}

// Withdraw debits an account.
func Withdraw(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		input, err := BindAndValidate[MovementRequest](c)
		if err != nil {
			return nil
		}
		tx, err := svc.Withdraw(c.UserContext(), id, input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Withdrawal completed",
			Data:    dto.FromTransaction(tx),
		})
	}
}
