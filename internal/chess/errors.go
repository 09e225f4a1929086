package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is wrapped by every rejection from MakeMove.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNoPiece is returned by ValidMoves for an empty or off-board square.
	ErrNoPiece = errors.New("no piece at square")

	// ErrKingNotFound means the board has no king for the color being tested.
	ErrKingNotFound = errors.New("king not found")
)

// Rejection reasons carried by MoveError.
const (
	ReasonNoPiece          = "no piece at start square"
	ReasonNotYourTurn      = "not your turn"
	ReasonNoLegalMoves     = "piece has no legal moves"
	ReasonPromotionNeeded  = "promotion piece required"
	ReasonPromotionInvalid = "promotion not allowed for this move"
	ReasonIllegal          = "not a legal move"
)

// MoveError reports why a submitted move was rejected.
type MoveError struct {
	Move   Move
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %s", e.Move, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return ErrInvalidMove
}

// InvariantError reports a malformed board, such as one without a king.
type InvariantError struct {
	Color Color
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %v", e.Color, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
