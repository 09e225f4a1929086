package model

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/ws"
)

// Conn is the part of a websocket connection the game needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// client serializes writes to one connection.
type client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// GameConnections holds the live connections of one game, one per user.
type GameConnections struct {
	mu      sync.RWMutex
	clients map[string]*client // username -> connection
	log     zerolog.Logger
}

func NewGameConnections(log zerolog.Logger) *GameConnections {
	return &GameConnections{
		clients: make(map[string]*client),
		log:     log,
	}
}

// Add registers conn for username. An existing connection for the same
// user is replaced and closed.
func (gc *GameConnections) Add(username string, conn Conn) {
	gc.mu.Lock()
	old, exists := gc.clients[username]
	gc.clients[username] = &client{conn: conn}
	gc.mu.Unlock()

	if exists && old.conn != conn {
		gc.log.Debug().Str("user", username).Msg("replacing connection")
		old.conn.Close()
	}
}

// Remove unregisters conn if it is still the current connection of username.
func (gc *GameConnections) Remove(username string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if c, exists := gc.clients[username]; exists && c.conn == conn {
		delete(gc.clients, username)
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.clients)
}

// Send writes msg to username's connection, if any.
func (gc *GameConnections) Send(username string, msg ws.Message) error {
	gc.mu.RLock()
	c, ok := gc.clients[username]
	gc.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.send(msg)
}

// Broadcast writes msg to every connection and drops the ones that fail.
func (gc *GameConnections) Broadcast(msg ws.Message) {
	gc.mu.RLock()
	active := make(map[string]*client, len(gc.clients))
	for username, c := range gc.clients {
		active[username] = c
	}
	gc.mu.RUnlock()

	for username, c := range active {
		if err := c.send(msg); err != nil {
			gc.log.Warn().Err(err).Str("user", username).Msg("dropping connection")
			gc.Remove(username, c.conn)
			c.conn.Close()
		}
	}
}

// CloseAll closes and forgets every connection.
func (gc *GameConnections) CloseAll() {
	gc.mu.Lock()
	clients := gc.clients
	gc.clients = make(map[string]*client)
	gc.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
}
