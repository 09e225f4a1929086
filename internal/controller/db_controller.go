package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/service"
)

// DBController resets all in-memory state.
type DBController struct {
	userService *service.UserService
	gameService *service.GameService
	log         zerolog.Logger
}

func NewDBController(userService *service.UserService, gameService *service.GameService, log zerolog.Logger) *DBController {
	return &DBController{userService: userService, gameService: gameService, log: log}
}

func (dc *DBController) Clear(c *fiber.Ctx) error {
	dc.gameService.Clear()
	dc.userService.Clear()
	dc.log.Warn().Msg("database cleared")
	return c.JSON(fiber.Map{})
}
