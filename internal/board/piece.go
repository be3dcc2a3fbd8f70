package board

import "strings"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the kind of a chess piece.
// The zero value is NoPieceType so that an empty square needs no initialisation.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes lists the six real piece kinds.
var PieceTypes = [6]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt > Pawn {
		return ' '
	}
	return " kqrbnp"[pt]
}

// ParsePieceType accepts a FEN letter or a full name in either case ("q", "Queen").
func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "k", "king":
		return King, true
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	case "p", "pawn":
		return Pawn, true
	}
	return NoPieceType, false
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType | color<<3. The zero value is NoPiece.
type Piece uint8

const NoPiece Piece = 0

const (
	WhiteKing   = Piece(King) | Piece(White)<<3
	WhiteQueen  = Piece(Queen) | Piece(White)<<3
	WhiteRook   = Piece(Rook) | Piece(White)<<3
	WhiteBishop = Piece(Bishop) | Piece(White)<<3
	WhiteKnight = Piece(Knight) | Piece(White)<<3
	WhitePawn   = Piece(Pawn) | Piece(White)<<3
	BlackKing   = Piece(King) | Piece(Black)<<3
	BlackQueen  = Piece(Queen) | Piece(Black)<<3
	BlackRook   = Piece(Rook) | Piece(Black)<<3
	BlackBishop = Piece(Bishop) | Piece(Black)<<3
	BlackKnight = Piece(Knight) | Piece(Black)<<3
	BlackPawn   = Piece(Pawn) | Piece(Black)<<3
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > Pawn || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

// Color returns the Color of the piece, NoColor for NoPiece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	return Color(p >> 3)
}

// Is reports whether p is a piece of the given type and color.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p != NoPiece && p.Type() == pt && p.Color() == c
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	ch := p.Type().Char()
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'K':
		return NewPiece(King, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'P':
		return NewPiece(Pawn, color)
	default:
		return NoPiece
	}
}
