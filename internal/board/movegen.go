package board

import "fmt"

// direction is a (file, rank) offset applied once per step.
type direction struct {
	file, rank int
}

var (
	orthogonal = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	allRays    = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

	knightJumps = []direction{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// offset returns the square steps*d away from sq. Both coordinates are
// recomputed and bounds-checked, so a step off one edge never wraps onto the other.
func (d direction) offset(sq Square, steps int) (Square, bool) {
	return SquareFromCoords(sq.File()+d.file*steps, sq.Rank()+d.rank*steps)
}

// PseudoLegalMoves returns every destination the piece on from can reach by
// its movement geometry, ignoring whether the move leaves its own king in check.
// It fails with ErrEmptySquare or ErrWrongOwner when from holds no piece of color c.
func (b *Board) PseudoLegalMoves(from Square, c Color) (SquareSet, error) {
	p := b.PieceAt(from)
	if p == NoPiece {
		return EmptySet, fmt.Errorf("%s: %w", from, ErrEmptySquare)
	}
	if p.Color() != c {
		return EmptySet, fmt.Errorf("%s: %w", from, ErrWrongOwner)
	}
	return b.destinations(from, p), nil
}

// destinations dispatches on piece kind. It is shared by move generation and
// check detection so that every piece, pawns included, attacks the same way it moves.
func (b *Board) destinations(from Square, p Piece) SquareSet {
	us := p.Color()
	switch p.Type() {
	case Pawn:
		return b.pawnMoves(from, us)
	case Knight:
		return b.stepMoves(from, us, knightJumps)
	case King:
		return b.stepMoves(from, us, allRays)
	case Rook:
		return b.slideMoves(from, us, orthogonal)
	case Bishop:
		return b.slideMoves(from, us, diagonal)
	case Queen:
		return b.slideMoves(from, us, allRays)
	}
	return EmptySet
}

// pawnMoves generates single and double pushes plus diagonal captures.
// The double push needs both the intermediate and the target square empty.
func (b *Board) pawnMoves(from Square, us Color) SquareSet {
	forward, startRank := 1, 1
	if us == Black {
		forward, startRank = -1, 6
	}

	var moves SquareSet
	push := direction{0, forward}
	if one, ok := push.offset(from, 1); ok && b[one] == NoPiece {
		moves = moves.Add(one)
		if from.Rank() == startRank {
			if two, ok := push.offset(from, 2); ok && b[two] == NoPiece {
				moves = moves.Add(two)
			}
		}
	}

	for _, capture := range [2]direction{{-1, forward}, {1, forward}} {
		sq, ok := capture.offset(from, 1)
		if !ok {
			continue
		}
		if target := b[sq]; target != NoPiece && target.Color() != us {
			moves = moves.Add(sq)
		}
	}
	return moves
}

// stepMoves generates single-step moves (knight, king) from an offset table.
func (b *Board) stepMoves(from Square, us Color, steps []direction) SquareSet {
	var moves SquareSet
	for _, d := range steps {
		sq, ok := d.offset(from, 1)
		if !ok {
			continue
		}
		if target := b[sq]; target == NoPiece || target.Color() != us {
			moves = moves.Add(sq)
		}
	}
	return moves
}

// slideMoves unions the ray walks in each direction.
func (b *Board) slideMoves(from Square, us Color, rays []direction) SquareSet {
	var moves SquareSet
	for _, d := range rays {
		moves |= b.walk(from, us, d)
	}
	return moves
}

// walk steps along d until the board edge or the first occupied square.
// An enemy on that square is included as a capture; a friendly piece is not.
func (b *Board) walk(from Square, us Color, d direction) SquareSet {
	var ray SquareSet
	for step := 1; ; step++ {
		sq, ok := d.offset(from, step)
		if !ok {
			return ray
		}
		target := b[sq]
		if target == NoPiece {
			ray = ray.Add(sq)
			continue
		}
		if target.Color() != us {
			ray = ray.Add(sq)
		}
		return ray
	}
}
