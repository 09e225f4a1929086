package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves an auth token to a username.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// RequireAuth resolves the Authorization header (or the "auth" query
// parameter, which browsers must use for websocket upgrades) and stores the
// username in Locals("username").
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			token = c.Query("auth")
		}

		username, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Error: unauthorized",
			})
		}

		c.Locals("authToken", token)
		c.Locals("username", username)
		return c.Next()
	}
}
