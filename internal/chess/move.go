package chess

import (
	"fmt"
	"sort"
)

// Move is a start/end pair with an optional promotion. Promotion is empty
// unless a pawn lands on the far rank.
type Move struct {
	Start     Position  `json:"start"`
	End       Position  `json:"end"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func NewMove(start, end Position) Move {
	return Move{Start: start, End: end}
}

func NewPromotion(start, end Position, promotion PieceType) Move {
	return Move{Start: start, End: end, Promotion: promotion}
}

func (m Move) String() string {
	if m.Promotion != "" {
		return fmt.Sprintf("%s%s=%c", m.Start, m.End, m.Promotion.letter())
	}
	return fmt.Sprintf("%s%s", m.Start, m.End)
}

// MoveSet is an unordered set of moves.
type MoveSet map[Move]struct{}

func (s MoveSet) add(m Move) {
	s[m] = struct{}{}
}

func (s MoveSet) Contains(m Move) bool {
	_, ok := s[m]
	return ok
}

func (s MoveSet) Len() int {
	return len(s)
}

// Sorted returns the moves ordered by start, end and promotion.
func (s MoveSet) Sorted() []Move {
	moves := make([]Move, 0, len(s))
	for m := range s {
		moves = append(moves, m)
	}
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Start != b.Start {
			return a.Start.Less(b.Start)
		}
		if a.End != b.End {
			return a.End.Less(b.End)
		}
		return a.Promotion < b.Promotion
	})
	return moves
}

// Ends returns the distinct destination squares in row-major order.
func (s MoveSet) Ends() []Position {
	seen := make(map[Position]bool, len(s))
	ends := make([]Position, 0, len(s))
	for _, m := range s.Sorted() {
		if !seen[m.End] {
			seen[m.End] = true
			ends = append(ends, m.End)
		}
	}
	return ends
}
