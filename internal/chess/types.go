// Package chess implements the rules of a two-player chess game: move
// generation, king-safety filtering, check/checkmate/stalemate detection and
// move application. Castling and en passant are not supported.
package chess

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Rook   PieceType = "rook"
	Pawn   PieceType = "pawn"
)

// promotionTypes are the pieces a pawn may become on the far rank.
var promotionTypes = []PieceType{Rook, Knight, Bishop, Queen}

func (t PieceType) letter() byte {
	switch t {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Rook:
		return 'R'
	case Pawn:
		return 'P'
	}
	return '?'
}

// Position is a board square, 1-indexed. Row 1 is White's back rank.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 1 && p.Row <= 8 && p.Col >= 1 && p.Col <= 8
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func (p Position) offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

// Piece is an immutable (color, type) pair. The zero value is "no piece".
type Piece struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

func NewPiece(c Color, t PieceType) Piece {
	return Piece{Color: c, Type: t}
}

func (p Piece) IsZero() bool {
	return p == Piece{}
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}
