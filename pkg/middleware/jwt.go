// Package middleware holds the fiber middleware shared across routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fintechlab/bankapi/pkg/config"
)

// JwtProtected returns a middleware that rejects requests without a valid
// bearer token signed with the configured secret.
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	if err.Error() == "missing or malformed JWT" {
		status = fiber.StatusBadRequest
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"title":  "Unauthorized",
		"status": status,
		"detail": err.Error(),
	})
}

// CallerID extracts the token subject, the opaque caller identity. Returns
// the empty string when the route is not JWT-protected.
func CallerID(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
