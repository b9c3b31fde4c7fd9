// Package webapi is the thin HTTP request layer: route handlers parse and
// validate input, call a service, and render DTOs or problem-details errors.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fintechlab/bankapi/pkg/config"
	accountsvc "github.com/fintechlab/bankapi/pkg/service/account"
	cardsvc "github.com/fintechlab/bankapi/pkg/service/card"
	holdersvc "github.com/fintechlab/bankapi/pkg/service/holder"
	transfersvc "github.com/fintechlab/bankapi/pkg/service/transfer"
)

// Services bundles the application services the routes depend on.
type Services struct {
	Account  *accountsvc.Service
	Card     *cardsvc.Service
	Holder   *holdersvc.Service
	Transfer *transfersvc.Service
}

// NewApp builds the fiber application with rate limiting, panic recovery,
// and all routes registered.
func NewApp(cfg *config.App, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	HolderRoutes(app, cfg, svc.Holder)
	AccountRoutes(app, cfg, svc.Account, svc.Transfer)
	CardRoutes(app, cfg, svc.Card)
	TransferRoutes(app, cfg, svc.Transfer)

	return app
}
