package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/dto"
	"github.com/fintechlab/bankapi/pkg/middleware"
	holdersvc "github.com/fintechlab/bankapi/pkg/service/holder"
)

// RegisterHolderRequest is the payload for registering an account holder.
type RegisterHolderRequest struct {
	FirstName   string          `json:"first_name" validate:"required,max=100"`
	LastName    string          `json:"last_name" validate:"required,max=100"`
	Email       string          `json:"email" validate:"required,email"`
	Phone       string          `json:"phone" validate:"required"`
	DateOfBirth string          `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address     *AddressPayload `json:"address" validate:"omitempty"`
}

// UpdateContactRequest is the payload for updating holder contact info.
// Absent fields are left unchanged.
type UpdateContactRequest struct {
	Email   *string         `json:"email" validate:"omitempty,email"`
	Phone   *string         `json:"phone"`
	Address *AddressPayload `json:"address"`
}

// AddressPayload is the postal address shape accepted by the API.
type AddressPayload struct {
	Street  string `json:"street" validate:"max=200"`
	City    string `json:"city" validate:"max=100"`
	ZipCode string `json:"zip_code" validate:"max=20"`
	Country string `json:"country" validate:"max=100"`
}

func (p *AddressPayload) toDomain() *holder.Address {
	if p == nil {
		return nil
	}
	return &holder.Address{
		Street:  p.Street,
		City:    p.City,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}

// HolderRoutes registers the account holder endpoints.
func HolderRoutes(app *fiber.App, cfg *config.App, holderSvc *holdersvc.Service) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	app.Post("/holder", jwt, RegisterHolder(holderSvc))
	app.Get("/holder/:id", jwt, GetHolder(holderSvc))
	app.Put("/holder/:id/contact", jwt, UpdateHolderContact(holderSvc))
	app.Delete("/holder/:id", jwt, DeleteHolder(holderSvc))
}

// RegisterHolder creates a new account holder.
func RegisterHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterHolderRequest](c)
		if err != nil {
			return nil
		}
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date of birth", err.Error())
		}
		h, err := svc.Register(
			c.UserContext(),
			input.FirstName, input.LastName,
			input.Email, input.Phone,
			dob, input.Address.toDomain())
		if err != nil {
			return DomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Holder registered",
			Data:    dto.FromHolder(h),
		})
	}
}

// GetHolder returns a single account holder.
func GetHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "OK", Data: dto.FromHolder(h)})
	}
}

// UpdateHolderContact updates any provided contact fields on a holder.
func UpdateHolderContact(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[UpdateContactRequest](c)
		if err != nil {
			return nil
		}
		var email *holder.EmailAddress
		if input.Email != nil {
			parsed, err := holder.ParseEmail(*input.Email)
			if err != nil {
				return DomainError(c, err)
			}
			email = &parsed
		}
		var phone *holder.PhoneNumber
		if input.Phone != nil {
			parsed, err := holder.ParsePhone(*input.Phone)
			if err != nil {
				return DomainError(c, err)
			}
			phone = &parsed
		}
		h, err := svc.UpdateContactInfo(c.UserContext(), c.Params("id"), email, phone, input.Address.toDomain())
		if err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Holder updated", Data: dto.FromHolder(h)})
	}
}

// DeleteHolder soft-deletes an account holder.
func DeleteHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return DomainError(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Holder deleted"})
	}
}
