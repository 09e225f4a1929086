// Package fen converts between FEN strings and engine boards.
// Castling rights, en passant target and move counters are accepted on
// input and ignored; the engine does not track them.
package fen

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
	nchess "github.com/notnil/chess"
)

// Start is the standard starting position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var typesFrom = map[nchess.PieceType]chess.PieceType{
	nchess.King:   chess.King,
	nchess.Queen:  chess.Queen,
	nchess.Rook:   chess.Rook,
	nchess.Bishop: chess.Bishop,
	nchess.Knight: chess.Knight,
	nchess.Pawn:   chess.Pawn,
}

var (
	whitePieces = map[chess.PieceType]nchess.Piece{
		chess.King:   nchess.WhiteKing,
		chess.Queen:  nchess.WhiteQueen,
		chess.Rook:   nchess.WhiteRook,
		chess.Bishop: nchess.WhiteBishop,
		chess.Knight: nchess.WhiteKnight,
		chess.Pawn:   nchess.WhitePawn,
	}
	blackPieces = map[chess.PieceType]nchess.Piece{
		chess.King:   nchess.BlackKing,
		chess.Queen:  nchess.BlackQueen,
		chess.Rook:   nchess.BlackRook,
		chess.Bishop: nchess.BlackBishop,
		chess.Knight: nchess.BlackKnight,
		chess.Pawn:   nchess.BlackPawn,
	}
)

// Decode parses a FEN string. A placement-only string is accepted and means
// White to move.
func Decode(s string) (*chess.Board, chess.Color, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return nil, "", fmt.Errorf("empty FEN")
	case 1:
		fields = append(fields, "w")
		fallthrough
	case 2:
		// Drop castling and en passant: the engine supports neither.
		fields = append(fields[:2], "-", "-", "0", "1")
	default:
		if len(fields) < 6 {
			fields = append(fields[:2], "-", "-", "0", "1")
		} else {
			fields[2], fields[3] = "-", "-"
		}
	}

	opt, err := nchess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, "", fmt.Errorf("decode FEN %q: %w", s, err)
	}
	pos := nchess.NewGame(opt).Position()

	board := chess.NewBoard()
	for sq, p := range pos.Board().SquareMap() {
		t, ok := typesFrom[p.Type()]
		if !ok {
			continue
		}
		board.SetPiece(positionOf(sq), chess.NewPiece(colorFrom(p.Color()), t))
	}
	return board, colorFrom(pos.Turn()), nil
}

// MustDecode is Decode for fixed positions in tests and defaults.
func MustDecode(s string) (*chess.Board, chess.Color) {
	b, c, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b, c
}

// Encode renders the board and side to move as a full FEN string.
func Encode(b *chess.Board, turn chess.Color) string {
	m := make(map[nchess.Square]nchess.Piece)
	b.Each(func(pos chess.Position, p chess.Piece) bool {
		pieces := whitePieces
		if p.Color == chess.Black {
			pieces = blackPieces
		}
		m[squareOf(pos)] = pieces[p.Type]
		return true
	})
	side := "w"
	if turn == chess.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", nchess.NewBoard(m).String(), side)
}

func colorFrom(c nchess.Color) chess.Color {
	if c == nchess.Black {
		return chess.Black
	}
	return chess.White
}

// Squares are numbered a1=0, b1=1, ..., h8=63.
func positionOf(sq nchess.Square) chess.Position {
	return chess.Position{Row: int(sq.Rank()) + 1, Col: int(sq.File()) + 1}
}

func squareOf(pos chess.Position) nchess.Square {
	return nchess.Square((pos.Row-1)*8 + pos.Col - 1)
}
