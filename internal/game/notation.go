package game

import (
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// moveSAN renders a move in standard algebraic notation. It must be called
// on the board before the move is applied; the check suffix comes from the
// status after the move.
func moveSAN(b *board.Board, from, to board.Square, after Status) string {
	piece := b.PieceAt(from)
	pt := piece.Type()

	var sb strings.Builder
	if pt != board.Pawn {
		sb.WriteByte(upper(pt.Char()))
		sb.WriteString(disambiguation(b, from, to, piece))
	}
	if !b.IsEmpty(to) {
		if pt == board.Pawn {
			sb.WriteByte(from.String()[0])
		}
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	sb.WriteString(checkSuffix(after))
	return sb.String()
}

// promotionSAN renders a promotion as the square and the new piece, e.g. "e8=Q".
func promotionSAN(sq board.Square, kind board.PieceType, status Status) string {
	return sq.String() + "=" + string(upper(kind.Char())) + checkSuffix(status)
}

func checkSuffix(s Status) string {
	switch s {
	case Checkmate:
		return "#"
	case Check:
		return "+"
	}
	return ""
}

// disambiguation returns the file, rank or square of from when another
// piece of the same kind can also legally reach to.
func disambiguation(b *board.Board, from, to board.Square, piece board.Piece) string {
	var candidates []board.Square
	for sq, targets := range b.AllLegalMoves(piece.Color()) {
		if sq != from && b.PieceAt(sq) == piece && targets.Contains(to) {
			candidates = append(candidates, sq)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}
	name := from.String()
	switch {
	case !sameFile:
		return name[:1]
	case !sameRank:
		return name[1:]
	}
	return name
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
