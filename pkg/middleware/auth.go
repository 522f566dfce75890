// Package middleware holds fiber middleware shared by the HTTP routes.
package middleware

import (
	"errors"

	"github.com/amirasaad/amanah/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the fiber local the verified *jwt.Token is stored under.
const UserContextKey = "user"

// JwtProtected rejects requests without a valid HS256 bearer token signed
// with the configured secret.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:   UserContextKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status, title := fiber.StatusUnauthorized, "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		status, title = fiber.StatusBadRequest, "Missing or malformed JWT"
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   err.Error(),
		"instance": c.OriginalURL(),
	})
}
