package service

import "errors"

var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrGameNotFound   = errors.New("game not found")
	ErrGameNameNeeded = errors.New("game name required")
)
