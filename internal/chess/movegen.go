package chess

type direction struct {
	dr, dc int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// PseudoMoves returns every move the piece standing on from could make
// according to its movement pattern and the occupancy of b, without regard
// to the safety of its own king.
func (p Piece) PseudoMoves(b *Board, from Position) MoveSet {
	moves := MoveSet{}
	switch p.Type {
	case King:
		p.stepMoves(b, from, kingDirs, moves)
	case Knight:
		p.stepMoves(b, from, knightDirs, moves)
	case Rook:
		p.rayMoves(b, from, rookDirs, moves)
	case Bishop:
		p.rayMoves(b, from, bishopDirs, moves)
	case Queen:
		p.rayMoves(b, from, rookDirs, moves)
		p.rayMoves(b, from, bishopDirs, moves)
	case Pawn:
		p.pawnMoves(b, from, moves)
	}
	return moves
}

// stepMoves adds each single step that lands on the board and not on a
// friendly piece.
func (p Piece) stepMoves(b *Board, from Position, dirs []direction, moves MoveSet) {
	for _, dir := range dirs {
		to := from.offset(dir.dr, dir.dc)
		if !to.InBounds() {
			continue
		}
		if c, ok := b.ColorAt(to); ok && c == p.Color {
			continue
		}
		moves.add(NewMove(from, to))
	}
}

// rayMoves walks outward in each direction until the edge or the first
// occupied square, which is included only when it holds an enemy piece.
func (p Piece) rayMoves(b *Board, from Position, dirs []direction, moves MoveSet) {
	for _, dir := range dirs {
		for to := from.offset(dir.dr, dir.dc); to.InBounds(); to = to.offset(dir.dr, dir.dc) {
			c, occupied := b.ColorAt(to)
			if !occupied {
				moves.add(NewMove(from, to))
				continue
			}
			if c != p.Color {
				moves.add(NewMove(from, to))
			}
			break
		}
	}
}

func (p Piece) pawnMoves(b *Board, from Position, moves MoveSet) {
	forward, homeRow, lastRow := 1, 2, 8
	if p.Color == Black {
		forward, homeRow, lastRow = -1, 7, 1
	}

	add := func(to Position) {
		if to.Row == lastRow {
			for _, t := range promotionTypes {
				moves.add(NewPromotion(from, to, t))
			}
			return
		}
		moves.add(NewMove(from, to))
	}

	one := from.offset(forward, 0)
	if one.InBounds() && b.isEmpty(one) {
		add(one)
		two := from.offset(2*forward, 0)
		if from.Row == homeRow && b.isEmpty(two) {
			add(two)
		}
	}

	for _, dc := range []int{-1, 1} {
		to := from.offset(forward, dc)
		if c, ok := b.ColorAt(to); ok && c != p.Color {
			add(to)
		}
	}
}
