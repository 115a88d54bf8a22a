package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDLocalKey is the key under which Auth stores the authenticated user ID.
const UserIDLocalKey = "user_id"

// TokenValidator turns a bearer token into a user ID.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header.
// Failures are returned as fiber.ErrUnauthorized for the app's error handler to render.
func Auth(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.ErrUnauthorized
		}
		userID, err := v.Validate(strings.TrimSpace(token))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID, or "" on public routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
