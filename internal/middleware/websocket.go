package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the game and user are known before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Params("gameId") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Error: game ID is required",
			})
		}

		// Set by RequireAuth.
		if c.Locals("username") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Error: unauthorized",
			})
		}

		return c.Next()
	}
}
