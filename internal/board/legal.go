package board

// LegalMoves returns the pseudo-legal destinations of the piece on from
// that do not leave c's own king in check. Each candidate is tried on a
// copy of the board; the receiver is never modified.
func (b *Board) LegalMoves(from Square, c Color) (SquareSet, error) {
	candidates, err := b.PseudoLegalMoves(from, c)
	if err != nil {
		return EmptySet, err
	}
	return b.filterLegal(from, c, candidates), nil
}

func (b *Board) filterLegal(from Square, c Color, candidates SquareSet) SquareSet {
	legal := candidates
	for to := range candidates.All() {
		sim := b.WithMove(from, to)
		if sim.InCheck(c) {
			legal = legal.Remove(to)
		}
	}
	return legal
}

// HasAnyLegalMove reports whether any piece of color c has a legal move.
// It stops at the first piece with a non-empty legal set.
func (b *Board) HasAnyLegalMove(c Color) bool {
	for from, p := range b {
		if p == NoPiece || p.Color() != c {
			continue
		}
		sq := Square(from)
		if !b.filterLegal(sq, c, b.destinations(sq, p)).IsEmpty() {
			return true
		}
	}
	return false
}

// AllLegalMoves maps every square of color c that has a legal move to its destinations.
func (b *Board) AllLegalMoves(c Color) map[Square]SquareSet {
	moves := make(map[Square]SquareSet)
	for from, p := range b {
		if p == NoPiece || p.Color() != c {
			continue
		}
		sq := Square(from)
		if legal := b.filterLegal(sq, c, b.destinations(sq, p)); !legal.IsEmpty() {
			moves[sq] = legal
		}
	}
	return moves
}
