// Package game drives a chess game: it owns the authoritative board, applies
// legal moves, alternates the side to move and derives the game status.
package game

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hailam/chessrules/internal/board"
)

// Game owns exactly one board, the side to move and the current status.
// It is not safe for concurrent use.
type Game struct {
	board    board.Board
	turn     board.Color
	status   Status
	startFEN string
	history  []Event
}

// New creates a game in the standard starting position with White to move.
func New() *Game {
	return &Game{
		board:    board.NewBoard(),
		turn:     board.White,
		status:   InProgress,
		startFEN: board.StartFEN,
	}
}

// FromFEN creates a game from a FEN position. The position must have exactly
// one king per side and the side not to move must not be in check.
func FromFEN(fen string) (*Game, error) {
	b, side, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrInvalidFEN, err)
	}
	if b.InCheck(side.Other()) {
		return nil, fmt.Errorf("%w: %s to move but %s is in check", board.ErrInvalidFEN, side, side.Other())
	}

	g := &Game{board: b, turn: side}
	g.startFEN = g.FEN()
	g.status = g.evaluate()
	return g, nil
}

// MakeMove moves the piece on from to to for the side to move.
// On success the turn passes and the new status is returned. On failure the
// game is unchanged, the current status is returned and err explains why:
// ErrGameOver, board.ErrEmptySquare, board.ErrWrongOwner or ErrIllegalDestination.
func (g *Game) MakeMove(from, to board.Square) (Status, error) {
	if g.status.Terminal() {
		return g.status, fmt.Errorf("%s: %w", g.status, ErrGameOver)
	}

	legal, err := g.board.LegalMoves(from, g.turn)
	if err != nil {
		return g.status, err
	}
	if !legal.Contains(to) {
		return g.status, fmt.Errorf("%s-%s: %w", from, to, ErrIllegalDestination)
	}

	before := g.board
	mover := before.PieceAt(from)
	captured := before.PieceAt(to)

	g.board = before.WithMove(from, to)
	g.turn = g.turn.Other()
	g.status = g.evaluate()

	g.history = append(g.history, Event{
		Action:   ActionMove,
		From:     from,
		To:       to,
		Piece:    mover,
		Captured: captured,
		SAN:      moveSAN(&before, from, to, g.status),
		Status:   g.status,
	})
	return g.status, nil
}

// Move is MakeMove for squares given in algebraic notation.
func (g *Game) Move(from, to string) (Status, error) {
	src, err := board.ParseSquare(from)
	if err != nil {
		return g.status, err
	}
	dst, err := board.ParseSquare(to)
	if err != nil {
		return g.status, err
	}
	return g.MakeMove(src, dst)
}

// SetPromotion replaces a pawn of the side to move on sq with a piece of the
// requested kind. It is never triggered automatically.
//
// Only Queen, Rook, Bishop and Knight are accepted; any other kind fails with
// ErrInvalidPromotion. A promotion whose new piece would attack the opposing
// king also fails with ErrInvalidPromotion and leaves the pawn in place, since
// the promoting side keeps the move and could otherwise capture the king.
func (g *Game) SetPromotion(sq board.Square, kind board.PieceType) error {
	if g.status.Terminal() {
		return fmt.Errorf("%s: %w", g.status, ErrGameOver)
	}
	if !slices.Contains(promotionKinds[:], kind) {
		return fmt.Errorf("%s: %w", kind, ErrInvalidPromotion)
	}
	pawn := g.board.PieceAt(sq)
	if !pawn.Is(board.Pawn, g.turn) {
		return fmt.Errorf("%s: %w", sq, ErrNotPromotable)
	}

	g.board.Set(sq, board.NewPiece(kind, g.turn))
	if g.board.InCheck(g.turn.Other()) {
		g.board.Set(sq, pawn)
		return fmt.Errorf("%s on %s would attack the %s king out of turn: %w", kind, sq, g.turn.Other(), ErrInvalidPromotion)
	}
	g.status = g.evaluate()
	g.history = append(g.history, Event{
		Action:    ActionPromote,
		From:      sq,
		To:        sq,
		Piece:     pawn,
		Promotion: kind,
		SAN:       promotionSAN(sq, kind, g.status),
		Status:    g.status,
	})
	return nil
}

// PromotionSquares returns the squares of pawns of the side to move that
// stand on the far rank and are waiting for SetPromotion.
func (g *Game) PromotionSquares() board.SquareSet {
	var pending board.SquareSet
	for sq, p := range g.board.All() {
		if p.Is(board.Pawn, g.turn) && sq.RelativeRank(g.turn) == 7 {
			pending = pending.Add(sq)
		}
	}
	return pending
}

var promotionKinds = [...]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// evaluate derives the status of the side to move. A pending promotion that
// would give the side a legal move keeps the game open.
func (g *Game) evaluate() Status {
	inCheck := g.board.InCheck(g.turn)
	hasMove := g.board.HasAnyLegalMove(g.turn) || g.promotionGivesMove()
	switch {
	case inCheck && !hasMove:
		return Checkmate
	case inCheck:
		return Check
	case !hasMove:
		return Stalemate
	}
	return InProgress
}

// promotionGivesMove reports whether some accepted promotion of a pending
// pawn leaves the side to move with a legal move.
func (g *Game) promotionGivesMove() bool {
	for sq := range g.PromotionSquares().All() {
		for _, kind := range promotionKinds {
			b := g.board
			b.Set(sq, board.NewPiece(kind, g.turn))
			if b.InCheck(g.turn.Other()) {
				continue
			}
			if b.HasAnyLegalMove(g.turn) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the legal destinations of the piece on sq for the side to move.
func (g *Game) LegalMoves(sq board.Square) (board.SquareSet, error) {
	return g.board.LegalMoves(sq, g.turn)
}

// Status returns the current game status.
func (g *Game) Status() Status {
	return g.status
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.turn
}

// Winner returns the side that delivered checkmate, if any.
func (g *Game) Winner() (board.Color, bool) {
	if g.status != Checkmate {
		return board.NoColor, false
	}
	return g.turn.Other(), true
}

// Board returns a copy of the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// PieceAt returns the piece on sq.
func (g *Game) PieceAt(sq board.Square) board.Piece {
	return g.board.PieceAt(sq)
}

// All yields the 64 squares with their pieces from a snapshot of the board.
func (g *Game) All() iter.Seq2[board.Square, board.Piece] {
	snapshot := g.board
	return snapshot.All()
}

// KingInCheck returns the square of the side to move's king when it is in check.
func (g *Game) KingInCheck() (board.Square, bool) {
	if g.status != Check && g.status != Checkmate {
		return board.NoSquare, false
	}
	sq, err := g.board.KingSquare(g.turn)
	if err != nil {
		return board.NoSquare, false
	}
	return sq, true
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return board.FEN(&g.board, g.turn)
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// String renders the board followed by the side to move and status.
func (g *Game) String() string {
	return fmt.Sprintf("%s\n%s to move: %s\n", g.board.String(), g.turn, g.status)
}
