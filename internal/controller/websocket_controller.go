package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log.With().Str("component", "ws").Logger(),
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	username := c.Locals("username").(string)

	if !wsc.open(gameID, username, c) {
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, username, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			wsc.log.Debug().Err(err).Str("game", gameID).Str("user", username).Msg("read ended")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		wsc.handleRaw(gameID, username, message)
	}
}

// open attaches conn to the game. On failure the error is written to conn
// and false is returned.
func (wsc *WebSocketController) open(gameID, username string, conn model.Conn) bool {
	err := wsc.gameService.RegisterConnection(gameID, username, conn)
	if err == nil {
		return true
	}
	wsc.log.Warn().Err(err).Str("game", gameID).Str("user", username).Msg("failed to register connection")
	// A failed registration leaves conn out of the game, so nothing else writes to it.
	if err := conn.WriteJSON(ws.NewError(err.Error())); err != nil {
		wsc.log.Debug().Err(err).Msg("failed to send error")
	}
	return false
}

// handleRaw processes one text frame. Failures go back to the sender only.
func (wsc *WebSocketController) handleRaw(gameID, username string, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		wsc.sendError(gameID, username, "malformed message")
		return
	}

	if err := wsc.handleMessage(gameID, username, msg); err != nil {
		log := wsc.log.With().Str("game", gameID).Str("user", username).Logger()
		if model.IsRejection(err) {
			log.Debug().Err(err).Msg("message rejected")
		} else {
			log.Error().Err(err).Msg("handle error")
		}
		wsc.sendError(gameID, username, err.Error())
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, username string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// The new state is broadcast by the game itself.
		_, err := wsc.gameService.HandleMove(gameID, username, move)
		return err

	case ws.MessageTypeLegalMoves:
		var req model.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.Position)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, model.LegalMovesReply{
			Position: req.Position,
			Moves:    moves,
		})
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, username, reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, username, errorMsg string) {
	if err := wsc.gameService.Send(gameID, username, ws.NewError(errorMsg)); err != nil {
		wsc.log.Debug().Err(err).Msg("failed to send error")
	}
}
