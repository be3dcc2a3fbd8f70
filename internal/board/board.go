package board

import (
	"fmt"
	"iter"
	"strings"
)

// Board is a complete piece placement: one optional piece per square.
// It is a value type; assigning or passing a Board by value copies it, so
// snapshots never alias the board they were taken from.
type Board [64]Piece

// backRank is the starting back-rank order by file index (file 0 = h).
var backRank = [8]PieceType{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// NewBoard returns the standard starting arrangement.
func NewBoard() Board {
	var b Board
	for file, pt := range backRank {
		b[NewSquare(file, 0)] = NewPiece(pt, White)
		b[NewSquare(file, 1)] = NewPiece(Pawn, White)
		b[NewSquare(file, 6)] = NewPiece(Pawn, Black)
		b[NewSquare(file, 7)] = NewPiece(pt, Black)
	}
	return b
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == NoPiece
}

// Set places p on sq, replacing whatever was there. NoPiece clears the square.
func (b *Board) Set(sq Square, p Piece) {
	b[sq] = p
}

// WithMove returns a copy of the board with the piece on from moved to to.
// The receiver is left untouched.
func (b *Board) WithMove(from, to Square) Board {
	next := *b
	next.apply(from, to)
	return next
}

// apply moves the piece on from to to, capturing whatever stood there.
func (b *Board) apply(from, to Square) {
	b[to] = b[from]
	b[from] = NoPiece
}

// Occupied returns the set of squares holding a piece of color c.
func (b *Board) Occupied(c Color) SquareSet {
	var s SquareSet
	for sq, p := range b {
		if p != NoPiece && p.Color() == c {
			s = s.Add(Square(sq))
		}
	}
	return s
}

// All yields every square together with its piece (NoPiece when empty).
func (b *Board) All() iter.Seq2[Square, Piece] {
	return func(yield func(Square, Piece) bool) {
		for sq := H1; sq < NoSquare; sq++ {
			if !yield(sq, b[sq]) {
				return
			}
		}
	}
}

// Count returns how many pieces of the given type and color are on the board.
func (b *Board) Count(pt PieceType, c Color) int {
	n := 0
	for _, p := range b {
		if p.Is(pt, c) {
			n++
		}
	}
	return n
}

// Validate checks that each side has exactly one king.
func (b *Board) Validate() error {
	for _, c := range [2]Color{White, Black} {
		if n := b.Count(King, c); n != 1 {
			return &InvariantError{Color: c, Kings: n}
		}
	}
	return nil
}

// String returns a visual representation of the board, rank 8 at the top
// and files a..h from left to right.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 7; file >= 0; file-- {
			p := b[NewSquare(file, rank)]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
