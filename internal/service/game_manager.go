// service/game_manager.go
package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/model"
)

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
	log   zerolog.Logger
}

func NewGameManager(log zerolog.Logger) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		log:   log.With().Str("component", "games").Logger(),
	}
}

func (gm *GameManager) CreateGame(name string) *model.Game {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gameID := uuid.New().String()
	game := model.NewGame(gameID, name, gm.log)
	gm.games[gameID] = game
	gm.log.Info().Str("game", gameID).Str("name", name).Msg("game created")
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// ListGames returns every game ordered by name, then ID.
func (gm *GameManager) ListGames() []model.GameSummary {
	gm.mu.RLock()
	games := make([]*model.Game, 0, len(gm.games))
	for _, g := range gm.games {
		games = append(games, g)
	}
	gm.mu.RUnlock()

	list := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		list = append(list, g.Summary())
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].GameName != list[j].GameName {
			return list[i].GameName < list[j].GameName
		}
		return list[i].GameID < list[j].GameID
	})
	return list
}

// Clear drops every game and closes its connections.
func (gm *GameManager) Clear() {
	gm.mu.Lock()
	games := gm.games
	gm.games = make(map[string]*model.Game)
	gm.mu.Unlock()

	for _, g := range games {
		g.Close()
	}
	gm.log.Info().Int("games", len(games)).Msg("games cleared")
}
