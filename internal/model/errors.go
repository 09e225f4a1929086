package model

import "errors"

var (
	ErrBadColor    = errors.New("bad player color")
	ErrColorTaken  = errors.New("color already taken")
	ErrNotPlayer   = errors.New("not a player in this game")
	ErrNotYourTurn = errors.New("not your turn")
	ErrBadPosition = errors.New("bad position")
)
