package chess

// Game owns a board and the side to move. It is not safe for concurrent
// use; callers serving several clients must serialize access per game.
type Game struct {
	board *Board
	turn  Color
}

// NewGame returns a game in the standard starting position, White to move.
func NewGame() *Game {
	return &Game{
		board: NewStandardBoard(),
		turn:  White,
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// SetBoard replaces the board with a copy of b.
func (g *Game) SetBoard(b *Board) {
	g.board = b.Clone()
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) SetTurn(c Color) {
	g.turn = c
}

// ValidMoves returns the legal moves of the piece at start. It returns
// ErrNoPiece when the square is empty; an empty set with a nil error means
// the piece exists but cannot move.
func (g *Game) ValidMoves(start Position) (MoveSet, error) {
	piece, ok := g.board.Piece(start)
	if !ok {
		return nil, ErrNoPiece
	}
	return legalMoves(g.board, piece, start)
}

// legalMoves filters the piece's pseudo-legal moves down to those that do
// not leave its own king attacked. Each candidate is tried on a scratch copy.
func legalMoves(b *Board, piece Piece, start Position) (MoveSet, error) {
	legal := MoveSet{}
	for m := range piece.PseudoMoves(b, start) {
		trial := b.Clone()
		trial.Clear(m.Start)
		trial.SetPiece(m.End, piece)
		check, err := inCheck(trial, piece.Color)
		if err != nil {
			return nil, err
		}
		if !check {
			legal.add(m)
		}
	}
	return legal, nil
}

// MakeMove validates and applies m, then passes the turn. On error the game
// is left untouched.
func (g *Game) MakeMove(m Move) error {
	piece, ok := g.board.Piece(m.Start)
	if !ok {
		return &MoveError{Move: m, Reason: ReasonNoPiece}
	}
	if piece.Color != g.turn {
		return &MoveError{Move: m, Reason: ReasonNotYourTurn}
	}

	moves, err := legalMoves(g.board, piece, m.Start)
	if err != nil {
		return err
	}
	if moves.Len() == 0 {
		return &MoveError{Move: m, Reason: ReasonNoLegalMoves}
	}
	if !moves.Contains(m) {
		return &MoveError{Move: m, Reason: rejectReason(moves, m)}
	}

	g.board.Clear(m.Start)
	if m.Promotion != "" {
		piece = NewPiece(piece.Color, m.Promotion)
	}
	g.board.SetPiece(m.End, piece)
	g.turn = g.turn.Opposite()
	return nil
}

func rejectReason(moves MoveSet, m Move) string {
	if m.Promotion == "" && moves.Contains(NewPromotion(m.Start, m.End, Queen)) {
		return ReasonPromotionNeeded
	}
	if m.Promotion != "" && moves.Contains(NewMove(m.Start, m.End)) {
		return ReasonPromotionInvalid
	}
	return ReasonIllegal
}

// IsInCheck reports whether any opposing piece attacks color's king.
func (g *Game) IsInCheck(c Color) (bool, error) {
	return inCheck(g.board, c)
}

func inCheck(b *Board, c Color) (bool, error) {
	king, err := findKing(b, c)
	if err != nil {
		return false, err
	}
	attacked := false
	b.Each(func(pos Position, p Piece) bool {
		if p.Color == c {
			return true
		}
		for m := range p.PseudoMoves(b, pos) {
			if m.End == king {
				attacked = true
				return false
			}
		}
		return true
	})
	return attacked, nil
}

// findKing returns the first king of color c in row-major order.
func findKing(b *Board, c Color) (Position, error) {
	var (
		king  Position
		found bool
	)
	b.Each(func(pos Position, p Piece) bool {
		if p.Color == c && p.Type == King {
			king, found = pos, true
			return false
		}
		return true
	})
	if !found {
		return Position{}, &InvariantError{Color: c, Err: ErrKingNotFound}
	}
	return king, nil
}

// HasLegalMoves reports whether any piece of color c has at least one legal
// move.
func (g *Game) HasLegalMoves(c Color) (bool, error) {
	var (
		has bool
		err error
	)
	g.board.Each(func(pos Position, p Piece) bool {
		if p.Color != c {
			return true
		}
		var moves MoveSet
		moves, err = legalMoves(g.board, p, pos)
		if err != nil {
			return false
		}
		has = moves.Len() > 0
		return !has
	})
	return has, err
}

// IsInCheckmate reports whether c is in check with no legal moves.
func (g *Game) IsInCheckmate(c Color) (bool, error) {
	s, err := g.Status(c)
	return s.Checkmate, err
}

// IsInStalemate reports whether c is not in check and has no legal moves.
func (g *Game) IsInStalemate(c Color) (bool, error) {
	s, err := g.Status(c)
	return s.Stalemate, err
}

// Status summarizes the position from c's point of view.
type Status struct {
	InCheck   bool `json:"inCheck"`
	Checkmate bool `json:"checkmate"`
	Stalemate bool `json:"stalemate"`
}

func (g *Game) Status(c Color) (Status, error) {
	check, err := g.IsInCheck(c)
	if err != nil {
		return Status{}, err
	}
	has, err := g.HasLegalMoves(c)
	if err != nil {
		return Status{}, err
	}
	return Status{
		InCheck:   check,
		Checkmate: check && !has,
		Stalemate: !check && !has,
	}, nil
}
