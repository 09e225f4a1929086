package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	GameName string `json:"gameName"`
}

type joinGameRequest struct {
	PlayerColor string `json:"playerColor"`
	GameID      string `json:"gameID"`
}

type loadPositionRequest struct {
	FEN string `json:"fen"`
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	gameID, err := gc.gameService.CreateGame(req.GameName)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"gameID": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var req joinGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	username := c.Locals("username").(string)

	if err := gc.gameService.JoinGame(req.GameID, username, req.PlayerColor); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// GetLegalMoves answers move hints for the square given by the row and col
// query parameters.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	pos := chess.Position{Row: c.QueryInt("row"), Col: c.QueryInt("col")}
	if !pos.InBounds() {
		return badRequest(c)
	}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), pos)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(model.LegalMovesReply{
		Position: pos,
		Moves:    moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return badRequest(c)
	}
	username := c.Locals("username").(string)

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), username, move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LoadPosition(c *fiber.Ctx) error {
	var req loadPositionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	gameState, err := gc.gameService.LoadPosition(c.Params("gameId"), req.FEN)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}
