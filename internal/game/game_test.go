package game

import (
	"errors"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func play(t *testing.T, g *Game, moves ...[2]string) Status {
	t.Helper()
	var st Status
	for _, m := range moves {
		var err error
		st, err = g.Move(m[0], m[1])
		if err != nil {
			t.Fatalf("Move(%s, %s): %v\n%s", m[0], m[1], err, g)
		}
	}
	return st
}

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := New()
	if g.Status() != InProgress || g.Turn() != board.White {
		t.Fatalf("new game: status %s, turn %s", g.Status(), g.Turn())
	}
	if g.FEN() != board.StartFEN {
		t.Errorf("FEN() = %s", g.FEN())
	}
	if len(g.History()) != 0 {
		t.Error("new game has history")
	}
	if _, ok := g.LastMove(); ok {
		t.Error("new game has a last move")
	}

	count := 0
	for _, p := range g.All() {
		if p != board.NoPiece {
			count++
		}
	}
	if count != 32 {
		t.Errorf("new game has %d pieces, want 32", count)
	}
}

func TestFoolsMate(t *testing.T) {
	g := New()
	st := play(t, g,
		[2]string{"f2", "f3"},
		[2]string{"e7", "e5"},
		[2]string{"g2", "g4"},
		[2]string{"d8", "h4"},
	)
	if st != Checkmate {
		t.Fatalf("status = %s, want checkmate\n%s", st, g)
	}
	if w, ok := g.Winner(); !ok || w != board.Black {
		t.Errorf("Winner() = %s, %v", w, ok)
	}

	b := g.Board()
	if !b.InCheck(board.White) || b.HasAnyLegalMove(board.White) {
		t.Error("white should be in check with no legal moves")
	}
	if sq, ok := g.KingInCheck(); !ok || sq != board.E1 {
		t.Errorf("KingInCheck() = %s, %v", sq, ok)
	}

	want := []string{"f3", "e5", "g4", "Qh4#"}
	for i, e := range g.History() {
		if e.SAN != want[i] {
			t.Errorf("history[%d].SAN = %q, want %q", i, e.SAN, want[i])
		}
	}

	fen := g.FEN()
	st, err := g.Move("a2", "a3")
	if !errors.Is(err, ErrGameOver) || st != Checkmate {
		t.Errorf("move after mate: %s, %v", st, err)
	}
	if g.FEN() != fen || len(g.History()) != 4 {
		t.Error("move after mate changed the game")
	}
}

func TestRejectedMoveLeavesGameUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"illegal destination", "e2", "e5", ErrIllegalDestination},
		{"own piece on target", "d1", "d2", ErrIllegalDestination},
		{"empty square", "e4", "e5", board.ErrEmptySquare},
		{"opponent piece", "e7", "e5", board.ErrWrongOwner},
		{"bad notation", "z9", "e4", board.ErrInvalidNotation},
		{"bad target notation", "e2", "e", board.ErrInvalidNotation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			for attempt := 1; attempt <= 2; attempt++ {
				st, err := g.Move(tc.from, tc.to)
				if !errors.Is(err, tc.want) {
					t.Fatalf("attempt %d: err = %v, want %v", attempt, err, tc.want)
				}
				if st != InProgress || g.Turn() != board.White || g.FEN() != board.StartFEN || len(g.History()) != 0 {
					t.Errorf("attempt %d: rejected move changed the game: %s, %s", attempt, st, g.FEN())
				}
			}
		})
	}
}

func TestTurnsAlternate(t *testing.T) {
	g := New()
	play(t, g, [2]string{"e2", "e4"})
	if g.Turn() != board.Black {
		t.Fatalf("turn = %s after white moved", g.Turn())
	}
	if _, err := g.Move("d2", "d4"); !errors.Is(err, board.ErrWrongOwner) {
		t.Errorf("white moved twice: %v", err)
	}
	play(t, g, [2]string{"d7", "d5"}, [2]string{"e4", "d5"})

	last, ok := g.LastMove()
	if !ok || last.From != board.E4 || last.To != board.D5 || last.Captured != board.BlackPawn {
		t.Errorf("LastMove() = %+v, %v", last, ok)
	}
	if last.SAN != "exd5" {
		t.Errorf("SAN = %q, want exd5", last.SAN)
	}
}

func TestCheckStatus(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	st := play(t, g, [2]string{"a1", "a8"})
	if st != Check {
		t.Fatalf("status = %s, want check", st)
	}
	if sq, ok := g.KingInCheck(); !ok || sq != board.E8 {
		t.Errorf("KingInCheck() = %s, %v", sq, ok)
	}
	if e, _ := g.LastMove(); e.SAN != "Ra8+" {
		t.Errorf("SAN = %q, want Ra8+", e.SAN)
	}

	// Only king moves off the eighth rank answer the check.
	moves, err := g.LegalMoves(board.E8)
	if err != nil {
		t.Fatal(err)
	}
	if moves != board.SetOf(board.D7, board.E7, board.F7) {
		t.Errorf("LegalMoves(e8) = %v", moves)
	}
	if st := play(t, g, [2]string{"e8", "e7"}); st != InProgress {
		t.Errorf("status after escaping = %s", st)
	}
}

func TestStalemate(t *testing.T) {
	g := mustGame(t, "7k/8/4Q1K1/8/8/8/8/8 w - - 0 1")
	st := play(t, g, [2]string{"e6", "f7"})
	if st != Stalemate || !st.Terminal() {
		t.Fatalf("status = %s, want stalemate", st)
	}
	if _, ok := g.Winner(); ok {
		t.Error("stalemate has a winner")
	}
	if _, err := g.Move("h8", "g8"); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after stalemate: %v", err)
	}
}

func TestFromFEN(t *testing.T) {
	g := mustGame(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if g.Status() != Checkmate || g.Turn() != board.Black {
		t.Errorf("status %s, turn %s", g.Status(), g.Turn())
	}

	for _, fen := range []string{
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/3KK3 w - - 0 1",
		"4k3/8/8/8/8/8/8/4R1K1 w - - 0 1",
		"not a fen",
	} {
		if _, err := FromFEN(fen); !errors.Is(err, board.ErrInvalidFEN) {
			t.Errorf("FromFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestSetPromotion(t *testing.T) {
	g := mustGame(t, "P7/8/8/8/8/8/1k6/4K3 w - - 0 1")
	if got := g.PromotionSquares(); got != board.SetOf(board.A8) {
		t.Fatalf("PromotionSquares() = %v", got)
	}

	for _, kind := range []board.PieceType{board.King, board.Pawn, board.NoPieceType} {
		if err := g.SetPromotion(board.A8, kind); !errors.Is(err, ErrInvalidPromotion) {
			t.Errorf("SetPromotion(a8, %s) err = %v", kind, err)
		}
	}
	if err := g.SetPromotion(board.E1, board.Queen); !errors.Is(err, ErrNotPromotable) {
		t.Errorf("SetPromotion(e1) err = %v", err)
	}
	if err := g.SetPromotion(board.B2, board.Queen); !errors.Is(err, ErrNotPromotable) {
		t.Errorf("SetPromotion on opponent square err = %v", err)
	}
	if g.PieceAt(board.A8) != board.WhitePawn {
		t.Fatal("rejected promotion changed the board")
	}

	if err := g.SetPromotion(board.A8, board.Queen); err != nil {
		t.Fatal(err)
	}
	if g.PieceAt(board.A8) != board.WhiteQueen || g.Turn() != board.White {
		t.Errorf("after promotion: %s on a8, %s to move", g.PieceAt(board.A8), g.Turn())
	}
	if !g.PromotionSquares().IsEmpty() {
		t.Error("promotion still pending")
	}
	h := g.History()
	if len(h) != 1 || h[0].Action != ActionPromote || h[0].SAN != "a8=Q" {
		t.Errorf("history = %+v", h)
	}
	if _, ok := g.LastMove(); ok {
		t.Error("promotion counted as a move")
	}
}

func TestSetPromotionRefusesCheckOutOfTurn(t *testing.T) {
	g := mustGame(t, "P3k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err := g.SetPromotion(board.A8, board.Queen); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("queen on a8 would check e8: err = %v", err)
	}
	if g.PieceAt(board.A8) != board.WhitePawn {
		t.Fatal("refused promotion changed the board")
	}
	if err := g.SetPromotion(board.A8, board.Knight); err != nil {
		t.Fatalf("knight promotion: %v", err)
	}
}

func TestSANDisambiguation(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/1N1K1N2 w - - 0 1")
	play(t, g, [2]string{"b1", "d2"})
	if e, _ := g.LastMove(); e.SAN != "Nbd2" {
		t.Errorf("SAN = %q, want Nbd2", e.SAN)
	}
}

func TestReplay(t *testing.T) {
	g := New()
	play(t, g,
		[2]string{"e2", "e4"},
		[2]string{"e7", "e5"},
		[2]string{"g1", "f3"},
		[2]string{"b8", "c6"},
	)

	r, err := Replay(g.StartFEN(), g.History())
	if err != nil {
		t.Fatal(err)
	}
	if r.FEN() != g.FEN() || r.Status() != g.Status() || len(r.History()) != 4 {
		t.Errorf("replayed game differs: %s vs %s", r.FEN(), g.FEN())
	}

	bad := append(g.History(), Event{Action: ActionMove, From: board.E4, To: board.E5})
	if _, err := Replay("", bad); !errors.Is(err, ErrIllegalDestination) {
		t.Errorf("replay of illegal move: err = %v", err)
	}
}

func TestReplayFromFEN(t *testing.T) {
	g := mustGame(t, "P7/8/8/8/8/8/1k6/4K3 w - - 0 1")
	if err := g.SetPromotion(board.A8, board.Rook); err != nil {
		t.Fatal(err)
	}
	play(t, g, [2]string{"a8", "a2"})

	r, err := Replay(g.StartFEN(), g.History())
	if err != nil {
		t.Fatal(err)
	}
	if r.FEN() != g.FEN() {
		t.Errorf("FEN = %s, want %s", r.FEN(), g.FEN())
	}
}

func TestPendingPromotionKeepsGameOpen(t *testing.T) {
	g, err := FromFEN("8/P7/7k/8/8/8/4q3/7K w")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range [][2]string{{"a7", "a8"}, {"e2", "f2"}} {
		if _, err := g.Move(m[0], m[1]); err != nil {
			t.Fatalf("%s%s: %v", m[0], m[1], err)
		}
	}

	// The king has no move and the a8 pawn cannot move, but promoting it can.
	if g.Status() != InProgress {
		t.Fatalf("status with pending promotion = %s, want InProgress", g.Status())
	}
	if got := g.PromotionSquares(); got != board.SetOf(board.A8) {
		t.Fatalf("PromotionSquares() = %s, want [a8]", got)
	}
	if err := g.SetPromotion(board.A8, board.Queen); err != nil {
		t.Fatalf("SetPromotion(a8, Queen): %v", err)
	}
	if g.Status() != InProgress || g.PieceAt(board.A8) != board.WhiteQueen {
		t.Errorf("after promotion: status %s, a8 %s", g.Status(), g.PieceAt(board.A8))
	}
	if _, err := g.Move("a8", "a1"); err != nil {
		t.Errorf("promoted queen cannot move: %v", err)
	}
}
