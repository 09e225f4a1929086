package service

import (
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(name string) (string, error) {
	if name == "" {
		return "", ErrGameNameNeeded
	}
	return gs.gameManager.CreateGame(name).ID, nil
}

func (gs *GameService) ListGames() []model.GameSummary {
	return gs.gameManager.ListGames()
}

func (gs *GameService) JoinGame(gameID, username, color string) error {
	c, err := model.ParseColor(color)
	if err != nil {
		return err
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.AddPlayer(username, c)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.State()
}

func (gs *GameService) LegalMoves(gameID string, pos chess.Position) ([]model.LegalMove, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(pos)
}

func (gs *GameService) HandleMove(gameID, username string, move model.WSMove) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.MakeMove(username, move.ToMove())
}

func (gs *GameService) LoadPosition(gameID, fen string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.LoadPosition(fen)
}

func (gs *GameService) RegisterConnection(gameID, username string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(username, conn)
}

func (gs *GameService) UnregisterConnection(gameID, username string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(username, conn)
}

// Send writes msg to username's connection in the game, if any.
func (gs *GameService) Send(gameID, username string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(username, msg)
}

func (gs *GameService) Clear() {
	gs.gameManager.Clear()
}
