package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/fen"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// Game is one hosted game: the rules engine, the players seated at it and
// its observers. Every engine call happens under mu. pushMu is taken before
// mu by anything that sends state, so connections see states in the order
// they were produced.
type Game struct {
	ID          string
	Name        string
	pushMu      sync.Mutex
	mu          sync.Mutex
	engine      *chess.Game
	players     Players
	lastMove    *chess.Move
	connections *GameConnections
	log         zerolog.Logger
}

type GameState struct {
	ID       string       `json:"gameID"`
	Name     string       `json:"gameName"`
	Board    BoardState   `json:"boardState"`
	ToMove   chess.Color  `json:"toMove"`
	Players  Players      `json:"players"`
	Status   chess.Status `json:"status"`
	Resolve  *string      `json:"resolve"`
	LastMove *chess.Move  `json:"lastMove"`
}

// GameSummary is a lobby listing entry.
type GameSummary struct {
	GameID        string `json:"gameID"`
	GameName      string `json:"gameName"`
	WhiteUsername string `json:"whiteUsername,omitempty"`
	BlackUsername string `json:"blackUsername,omitempty"`
}

func NewGame(id, name string, log zerolog.Logger) *Game {
	log = log.With().Str("game", id).Logger()
	return &Game{
		ID:          id,
		Name:        name,
		engine:      chess.NewGame(),
		connections: NewGameConnections(log),
		log:         log,
	}
}

// AddPlayer seats username as color. Rejoining one's own seat is allowed.
func (g *Game) AddPlayer(username string, color chess.Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.players.username(color) {
	case "":
		g.players.set(color, username)
		g.log.Info().Str("user", username).Str("color", string(color)).Msg("player joined")
		return nil
	case username:
		return nil
	default:
		return ErrColorTaken
	}
}

func (g *Game) Summary() GameSummary {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GameSummary{
		GameID:        g.ID,
		GameName:      g.Name,
		WhiteUsername: g.players.White,
		BlackUsername: g.players.Black,
	}
}

func (g *Game) State() (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() (GameState, error) {
	turn := g.engine.Turn()
	status, err := g.engine.Status(turn)
	if err != nil {
		return GameState{}, err
	}
	state := GameState{
		ID:       g.ID,
		Name:     g.Name,
		Board:    newBoardState(g.engine.Board(), turn),
		ToMove:   turn,
		Players:  g.players,
		Status:   status,
		LastMove: g.lastMove,
	}
	switch {
	case status.Checkmate:
		result := "checkmate"
		state.Resolve = &result
	case status.Stalemate:
		result := "stalemate"
		state.Resolve = &result
	}
	return state, nil
}

// LegalMoves returns move hints for the piece at pos.
func (g *Game) LegalMoves(pos chess.Position) ([]LegalMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	moves, err := g.engine.ValidMoves(pos)
	if err != nil {
		return nil, err
	}
	return groupLegalMoves(moves), nil
}

// MakeMove applies move on behalf of username, who must be seated at the
// color on turn. The new state is pushed to every connection.
func (g *Game) MakeMove(username string, move chess.Move) (GameState, error) {
	g.pushMu.Lock()
	defer g.pushMu.Unlock()

	state, err := g.makeMove(username, move)
	if err != nil {
		return GameState{}, err
	}
	g.broadcast(state)
	return state, nil
}

func (g *Game) makeMove(username string, move chess.Move) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	turn := g.engine.Turn()
	if g.players.username(turn) != username {
		if g.players.White != username && g.players.Black != username {
			return GameState{}, ErrNotPlayer
		}
		return GameState{}, ErrNotYourTurn
	}
	if err := g.engine.MakeMove(move); err != nil {
		return GameState{}, err
	}
	g.lastMove = &move
	g.log.Info().Str("user", username).Stringer("move", move).Msg("move applied")
	return g.state()
}

// LoadPosition replaces the board and side to move with the FEN position.
// Positions missing a king are rejected.
func (g *Game) LoadPosition(s string) (GameState, error) {
	board, turn, err := fen.Decode(s)
	if err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrBadPosition, err)
	}
	probe := chess.NewGame()
	probe.SetBoard(board)
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if _, err := probe.IsInCheck(c); err != nil {
			return GameState{}, fmt.Errorf("%w: %v", ErrBadPosition, err)
		}
	}

	g.pushMu.Lock()
	defer g.pushMu.Unlock()

	g.mu.Lock()
	g.engine.SetBoard(board)
	g.engine.SetTurn(turn)
	g.lastMove = nil
	state, err := g.state()
	g.mu.Unlock()
	if err != nil {
		return GameState{}, err
	}

	g.log.Info().Str("fen", s).Msg("position loaded")
	g.broadcast(state)
	return state, nil
}

// RegisterConnection attaches conn as username's live channel and sends it
// the current state. Anyone may watch; only seated players may move. On
// error conn is no longer registered.
func (g *Game) RegisterConnection(username string, conn Conn) error {
	g.pushMu.Lock()
	defer g.pushMu.Unlock()

	g.connections.Add(username, conn)
	g.log.Debug().Str("user", username).Int("connections", g.connections.Len()).Msg("connection registered")

	if err := g.sendState(username); err != nil {
		g.connections.Remove(username, conn)
		return err
	}
	return nil
}

func (g *Game) sendState(username string) error {
	state, err := g.State()
	if err != nil {
		return err
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		return err
	}
	return g.connections.Send(username, msg)
}

func (g *Game) UnregisterConnection(username string, conn Conn) {
	g.connections.Remove(username, conn)
	g.log.Debug().Str("user", username).Msg("connection unregistered")
}

// Send writes a message to username's connection only.
func (g *Game) Send(username string, msg ws.Message) error {
	return g.connections.Send(username, msg)
}

// Close drops every connection of the game.
func (g *Game) Close() {
	g.connections.CloseAll()
}

// broadcast must be called with pushMu held.
func (g *Game) broadcast(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to encode state")
		return
	}
	g.connections.Broadcast(msg)
}

// IsRejection reports whether err is a client mistake rather than a fault.
func IsRejection(err error) bool {
	return errors.Is(err, chess.ErrInvalidMove) ||
		errors.Is(err, chess.ErrNoPiece) ||
		errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrNotPlayer) ||
		errors.Is(err, ErrBadPosition)
}
