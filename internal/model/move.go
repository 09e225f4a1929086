package model

import (
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

// WSMove is a move as submitted by a client.
type WSMove struct {
	Start     chess.Position  `json:"start"`
	End       chess.Position  `json:"end"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

// ToMove converts the submitted move. Promotion kinds are matched without
// regard to case, so "QUEEN" and "queen" name the same piece.
func (m WSMove) ToMove() chess.Move {
	return chess.NewPromotion(m.Start, m.End, chess.PieceType(strings.ToLower(string(m.Promotion))))
}

// LegalMove is a destination square for a move hint, with the promotion
// choices available there if the move promotes.
type LegalMove struct {
	End        chess.Position    `json:"end"`
	Promotions []chess.PieceType `json:"promotions,omitempty"`
}

type LegalMovesRequest struct {
	Position chess.Position `json:"position"`
}

type LegalMovesReply struct {
	Position chess.Position `json:"position"`
	Moves    []LegalMove    `json:"moves"`
}

// groupLegalMoves folds promotion variants into one hint per destination.
func groupLegalMoves(moves chess.MoveSet) []LegalMove {
	hints := []LegalMove{}
	index := map[chess.Position]int{}
	for _, m := range moves.Sorted() {
		i, ok := index[m.End]
		if !ok {
			i = len(hints)
			index[m.End] = i
			hints = append(hints, LegalMove{End: m.End})
		}
		if m.Promotion != "" {
			hints[i].Promotions = append(hints[i].Promotions, m.Promotion)
		}
	}
	return hints
}
