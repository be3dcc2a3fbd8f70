package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN parses a FEN string into a board and the side to move.
// Only placement and side to move are used; castling, en passant and
// the move counters are accepted and ignored.
func ParseFEN(fen string) (Board, Color, error) {
	var b Board
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return b, NoColor, fmt.Errorf("%w: need at least 2 fields, got %d", ErrInvalidFEN, len(parts))
	}

	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return b, NoColor, err
	}

	var side Color
	switch parts[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return b, NoColor, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	return b, side, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		col := 0      // 0 = a

		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			if c > 0x7f {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			b[NewSquare(7-col, rank)] = piece
			col++
		}

		if col != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, rank+1, col)
		}
	}

	return nil
}

// FEN returns the FEN representation of a board with the given side to move.
func FEN(b *Board, side Color) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 7; file >= 0; file-- {
			piece := b[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if side == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
