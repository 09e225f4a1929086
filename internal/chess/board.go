package chess

import "strings"

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is an 8x8 grid of pieces. Reads and writes outside the grid are
// treated as empty squares and ignored writes respectively.
type Board struct {
	squares [8][8]Piece
}

func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns the standard starting position.
func NewStandardBoard() *Board {
	b := NewBoard()
	for col := 1; col <= 8; col++ {
		b.SetPiece(Position{Row: 1, Col: col}, NewPiece(White, backRank[col-1]))
		b.SetPiece(Position{Row: 2, Col: col}, NewPiece(White, Pawn))
		b.SetPiece(Position{Row: 7, Col: col}, NewPiece(Black, Pawn))
		b.SetPiece(Position{Row: 8, Col: col}, NewPiece(Black, backRank[col-1]))
	}
	return b
}

// Piece returns the piece at pos, or false if the square is empty or off
// the board.
func (b *Board) Piece(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := b.squares[pos.Row-1][pos.Col-1]
	return p, !p.IsZero()
}

// SetPiece overwrites the square. Passing the zero Piece clears it.
func (b *Board) SetPiece(pos Position, p Piece) {
	if !pos.InBounds() {
		return
	}
	b.squares[pos.Row-1][pos.Col-1] = p
}

func (b *Board) Clear(pos Position) {
	b.SetPiece(pos, Piece{})
}

// ColorAt returns the color of the occupant of pos.
func (b *Board) ColorAt(pos Position) (Color, bool) {
	p, ok := b.Piece(pos)
	if !ok {
		return "", false
	}
	return p.Color, true
}

func (b *Board) isEmpty(pos Position) bool {
	_, ok := b.Piece(pos)
	return !ok
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Each calls fn for every occupied square in row-major order, stopping
// early when fn returns false.
func (b *Board) Each(fn func(Position, Piece) bool) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			pos := Position{Row: row, Col: col}
			if p, ok := b.Piece(pos); ok {
				if !fn(pos, p) {
					return
				}
			}
		}
	}
}

// String draws the board with row 8 on top. White pieces are upper case.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 8; row >= 1; row-- {
		sb.WriteByte(byte('0' + row))
		sb.WriteByte(' ')
		for col := 1; col <= 8; col++ {
			p, ok := b.Piece(Position{Row: row, Col: col})
			switch {
			case !ok:
				sb.WriteByte('.')
			case p.Color == Black:
				sb.WriteByte(p.Type.letter() + ('a' - 'A'))
			default:
				sb.WriteByte(p.Type.letter())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
