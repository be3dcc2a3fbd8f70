package board

import "testing"

func TestLegalMovesExcludeSelfCheck(t *testing.T) {
	// White rook on e2 shields the king on e1 from the black rook on e8.
	b, _ := mustFEN(t, "k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1")

	pseudo, err := b.PseudoLegalMoves(E2, White)
	if err != nil {
		t.Fatal(err)
	}
	if !pseudo.Contains(A2) || !pseudo.Contains(H2) {
		t.Fatalf("pseudo-legal set should include sideways moves, got %v", pseudo)
	}

	legal, err := b.LegalMoves(E2, White)
	if err != nil {
		t.Fatal(err)
	}
	want := squares("e3", "e4", "e5", "e6", "e7", "e8")
	if legal != want {
		t.Errorf("LegalMoves(e2) = %v, want %v", legal, want)
	}
	if b.PieceAt(E2) != WhiteRook || b.PieceAt(E8) != BlackRook {
		t.Error("legality filter modified the board")
	}
}

func TestLegalMovesKingAvoidsAttackedSquares(t *testing.T) {
	b, _ := mustFEN(t, "k7/8/8/8/8/8/3r4/7K w - - 0 1")
	legal, err := b.LegalMoves(H1, White)
	if err != nil {
		t.Fatal(err)
	}
	if legal != squares("g1") {
		t.Errorf("LegalMoves(h1) = %v, want [g1]", legal)
	}
}

func TestLegalMovesMustAnswerCheck(t *testing.T) {
	// Black bishop on b4 checks e1; the knight on b1 may only interpose on c3 or d2.
	b, _ := mustFEN(t, "4k3/8/8/8/1b6/8/8/1N2K3 w - - 0 1")
	legal, err := b.LegalMoves(B1, White)
	if err != nil {
		t.Fatal(err)
	}
	if legal != squares("c3", "d2") {
		t.Errorf("LegalMoves(b1) = %v, want [c3 d2]", legal)
	}
}

func TestHasAnyLegalMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color Color
		want  bool
	}{
		{"start position", StartFEN, White, true},
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Black, false},
		{"king can capture checker", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", Black, true},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Black, false},
		{"only a pawn push", "7k/5Q2/6K1/8/8/p7/8/8 b - - 0 1", Black, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := mustFEN(t, tc.fen)
			if got := b.HasAnyLegalMove(tc.color); got != tc.want {
				t.Errorf("HasAnyLegalMove(%s) = %v, want %v", tc.color, got, tc.want)
			}
		})
	}
}

func TestAllLegalMoves(t *testing.T) {
	b := NewBoard()
	moves := b.AllLegalMoves(White)
	total := 0
	for _, set := range moves {
		total += set.Count()
	}
	if len(moves) != 10 || total != 20 {
		t.Errorf("start position: %d pieces with %d moves, want 10 and 20", len(moves), total)
	}
}
