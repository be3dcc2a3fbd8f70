package board

import (
	"iter"
	"math/bits"
	"strings"
)

// SquareSet is a set of squares stored as a 64-bit mask, bit i = Square(i).
// Iteration order is ascending square index; callers must not rely on it.
type SquareSet uint64

// EmptySet contains no squares.
const EmptySet SquareSet = 0

// SquareBB returns a set holding only the given square.
func SquareBB(sq Square) SquareSet {
	return 1 << sq
}

// SetOf builds a set from the given squares.
func SetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

// Add returns the set with sq added.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | (1 << sq)
}

// Remove returns the set with sq removed.
func (s SquareSet) Remove(sq Square) SquareSet {
	return s &^ (1 << sq)
}

// Contains returns true if sq is in the set.
func (s SquareSet) Contains(sq Square) bool {
	return sq.IsValid() && s&(1<<sq) != 0
}

// Count returns the number of squares in the set.
func (s SquareSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty reports whether the set has no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// LSB returns the lowest square in the set.
func (s SquareSet) LSB() Square {
	if s == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(s)))
}

// PopLSB removes and returns the lowest square.
func (s *SquareSet) PopLSB() Square {
	sq := s.LSB()
	*s &= *s - 1
	return sq
}

// All yields every square in the set.
func (s SquareSet) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for rest := s; rest != 0; {
			if !yield(rest.PopLSB()) {
				return
			}
		}
	}
}

// Squares returns the members of the set as a slice.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Count())
	for sq := range s.All() {
		out = append(out, sq)
	}
	return out
}

// String lists the squares in notation, ordered a1, b1, ... h8.
func (s SquareSet) String() string {
	names := make([]string, 0, s.Count())
	for rank := 0; rank < 8; rank++ {
		for file := 7; file >= 0; file-- {
			sq := NewSquare(file, rank)
			if s.Contains(sq) {
				names = append(names, sq.String())
			}
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
