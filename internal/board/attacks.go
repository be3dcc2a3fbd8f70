package board

// KingSquare returns the square of c's king. It fails with *InvariantError
// when c has no king or more than one.
func (b *Board) KingSquare(c Color) (Square, error) {
	king := NoSquare
	n := 0
	for sq, p := range b {
		if p.Is(King, c) {
			if king == NoSquare {
				king = Square(sq)
			}
			n++
		}
	}
	if n != 1 {
		return NoSquare, &InvariantError{Color: c, Kings: n}
	}
	return king, nil
}

// AttackedBy reports whether any piece of color by has sq among its
// pseudo-legal destinations.
func (b *Board) AttackedBy(sq Square, by Color) bool {
	for from, p := range b {
		if p == NoPiece || p.Color() != by {
			continue
		}
		if b.destinations(Square(from), p).Contains(sq) {
			return true
		}
	}
	return false
}

// InCheck reports whether c's king is attacked by the opposing side.
// A board without exactly one king of color c is an internal-consistency
// failure and panics with *InvariantError.
func (b *Board) InCheck(c Color) bool {
	king, err := b.KingSquare(c)
	if err != nil {
		panic(err)
	}
	return b.AttackedBy(king, c.Other())
}

// Checkers returns the squares of the enemy pieces attacking c's king.
func (b *Board) Checkers(c Color) SquareSet {
	king, err := b.KingSquare(c)
	if err != nil {
		panic(err)
	}
	var checkers SquareSet
	for from, p := range b {
		if p == NoPiece || p.Color() == c {
			continue
		}
		if b.destinations(Square(from), p).Contains(king) {
			checkers = checkers.Add(Square(from))
		}
	}
	return checkers
}
