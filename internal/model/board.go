package model

import (
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/fen"
)

// BoardState is the rendering view of a board. Board[0] is row 1 and
// Board[r][c] holds the piece on Position{Row: r+1, Col: c+1}.
type BoardState struct {
	Board [][]*chess.Piece `json:"board"`
	FEN   string           `json:"fen"`
}

func newBoardState(b *chess.Board, turn chess.Color) BoardState {
	state := BoardState{
		Board: make([][]*chess.Piece, 8),
		FEN:   fen.Encode(b, turn),
	}
	for row := 1; row <= 8; row++ {
		state.Board[row-1] = make([]*chess.Piece, 8)
		for col := 1; col <= 8; col++ {
			if p, ok := b.Piece(chess.Position{Row: row, Col: col}); ok {
				state.Board[row-1][col-1] = &p
			}
		}
	}
	return state
}
