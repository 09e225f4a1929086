package model

import (
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

// User is a registered account.
type User struct {
	Username     string
	PasswordHash []byte
	Email        string
}

// AuthData is returned on register and login.
type AuthData struct {
	Username  string `json:"username"`
	AuthToken string `json:"authToken"`
}

type Players struct {
	White string `json:"whiteUsername,omitempty"`
	Black string `json:"blackUsername,omitempty"`
}

func (p Players) username(c chess.Color) string {
	if c == chess.White {
		return p.White
	}
	return p.Black
}

func (p *Players) set(c chess.Color, username string) {
	if c == chess.White {
		p.White = username
	} else {
		p.Black = username
	}
}

// ParseColor maps a client supplied color name ("white", "BLACK") to a
// chess.Color.
func ParseColor(s string) (chess.Color, error) {
	if c := chess.Color(strings.ToLower(s)); c.Valid() {
		return c, nil
	}
	return "", ErrBadColor
}
