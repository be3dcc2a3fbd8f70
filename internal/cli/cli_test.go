package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

func run(t *testing.T, c *CLI, script string) string {
	t.Helper()
	out := c.out.(*bytes.Buffer)
	out.Reset()
	if err := c.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func newTestCLI(t *testing.T, withStore bool) *CLI {
	t.Helper()
	if !withStore {
		return New(&bytes.Buffer{}, nil)
	}
	s, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return New(&bytes.Buffer{}, s)
}

func TestFoolsMateScript(t *testing.T) {
	c := newTestCLI(t, true)
	out := run(t, c, "f2f3\nmove e7 e5\nm g2 g4\nd8h4\nstats\n")

	for _, want := range []string{
		"ok f3 InProgress",
		"ok e5 InProgress",
		"ok Qh4# Checkmate",
		"checkmate, Black wins",
		"games 1, white wins 0, black wins 1, stalemates 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if c.Game().Status() != game.Checkmate {
		t.Errorf("status = %s", c.Game().Status())
	}

	out = run(t, c, "a2a3\n")
	if !strings.Contains(out, "error: Checkmate: game is over") {
		t.Errorf("move after mate: %s", out)
	}
}

func TestRejectedCommandsKeepGame(t *testing.T) {
	c := newTestCLI(t, false)
	out := run(t, c, "e2e5\nmove e4 e5\nmove e7 e5\nmove i9 e4\nfrobnicate\nsave\n")

	for _, want := range []string{
		"error: e2-e5: illegal destination",
		"error: e4: no piece on square",
		"error: e7: piece belongs to the other side",
		"invalid square notation",
		`unknown command "frobnicate"`,
		"error: storage is disabled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if c.Game().FEN() != board.StartFEN {
		t.Errorf("rejected commands changed the game: %s", c.Game().FEN())
	}
}

func TestMovesAndStatus(t *testing.T) {
	c := newTestCLI(t, false)
	out := run(t, c, "moves e2\nmoves g1\nstatus\n")

	for _, want := range []string{"e2: [e3 e4]", "g1: [f3 h3]", "White to move: InProgress"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPositionCommand(t *testing.T) {
	c := newTestCLI(t, false)

	out := run(t, c, "position startpos moves e2e4 e7e5\nfen\n")
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1"
	if !strings.Contains(out, want) {
		t.Errorf("fen after position: %s", out)
	}

	out = run(t, c, "position fen P7/8/8/8/8/8/1k6/4K3 w - - 0 1\n")
	if !strings.Contains(out, "pending promotion on [a8]") {
		t.Errorf("promotion prompt missing: %s", out)
	}

	out = run(t, c, "position fen P7/8/8/8/8/8/1k6/4K3 w - - 0 1 moves a8=r a8a2\n")
	if c.Game().PieceAt(board.A2) != board.WhiteRook || c.Game().Status() != game.Check {
		t.Errorf("position with promotion: %s\n%s", c.Game().FEN(), out)
	}

	before := c.Game().FEN()
	out = run(t, c, "position fen 8/8/8/8/8/8/8/4K3 w - - 0 1\n")
	if !strings.Contains(out, "invalid FEN") || c.Game().FEN() != before {
		t.Errorf("bad FEN accepted: %s", out)
	}
}

func TestPromoteCommand(t *testing.T) {
	c := newTestCLI(t, false)
	run(t, c, "position fen P7/8/8/8/8/8/1k6/4K3 w - - 0 1\n")

	out := run(t, c, "promote a8 king\npromote a8 x\npromote e1 q\npromote a8 q\n")
	for _, want := range []string{"invalid promotion piece", "no pawn of the side to move", "ok a8=Queen"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if c.Game().PieceAt(board.A8) != board.WhiteQueen {
		t.Errorf("a8 = %s", c.Game().PieceAt(board.A8))
	}
}

func TestSaveLoadHistory(t *testing.T) {
	c := newTestCLI(t, true)
	run(t, c, "e2e4\nd7d5\ne4d5\nsave opening\nnew\n")
	if c.Game().FEN() != board.StartFEN {
		t.Fatal("new did not reset the game")
	}

	out := run(t, c, "load opening\nhistory\n")
	for _, want := range []string{"loaded opening", "Black to move: InProgress", "3. exd5 (e4d5)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = run(t, c, "load nothing\n")
	if !strings.Contains(out, "no saved game") {
		t.Errorf("load of empty slot: %s", out)
	}
}

func TestQuitStopsReading(t *testing.T) {
	c := newTestCLI(t, false)
	run(t, c, "# comment\n\nquit\ne2e4\n")
	if c.Game().FEN() != board.StartFEN {
		t.Error("commands after quit were executed")
	}
}
