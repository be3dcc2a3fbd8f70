// Package board implements the rules core: board snapshots, move generation,
// check detection and legality filtering.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// rank = index / 8 and file = index % 8, with the file axis mirrored relative to
// algebraic order: H1=0, A1=7, H8=56, A8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	H1 Square = iota
	G1
	F1
	E1
	D1
	C1
	B1
	A1
	H2
	G2
	F2
	E2
	D2
	C2
	B2
	A2
	H3
	G3
	F3
	E3
	D3
	C3
	B3
	A3
	H4
	G4
	F4
	E4
	D4
	C4
	B4
	A4
	H5
	G5
	F5
	E5
	D5
	C5
	B5
	A5
	H6
	G6
	F6
	E6
	D6
	C6
	B6
	A6
	H7
	G7
	F7
	E7
	D7
	C7
	B7
	A7
	H8
	G8
	F8
	E8
	D8
	C8
	B8
	A8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=h, 7=a).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Notation returns the algebraic name of the square (e.g. "e4").
func (sq Square) Notation() (string, error) {
	if !sq.IsValid() {
		return "", fmt.Errorf("square %d: %w", sq, ErrInvalidNotation)
	}
	return string([]byte{byte('h' - sq.File()), byte('1' + sq.Rank())}), nil
}

// String returns the algebraic notation for the square, "-" when out of range.
func (sq Square) String() string {
	s, err := sq.Notation()
	if err != nil {
		return "-"
	}
	return s
}

// NewSquare creates a square from file and rank (0-indexed, file 0 = h).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// SquareFromCoords returns the square at (file, rank) and whether it lies on the board.
func SquareFromCoords(file, rank int) (Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, false
	}
	return NewSquare(file, rank), true
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%q: %w", s, ErrInvalidNotation)
	}
	file := int('h' - s[0])
	rank := int(s[1] - '1')
	return NewSquare(file, rank), nil
}

// MustParseSquare is ParseSquare for literals known to be valid.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
