package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func foolsMate(t *testing.T) *game.Game {
	t.Helper()
	g := game.New()
	for _, m := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		if _, err := g.Move(m[0], m[1]); err != nil {
			t.Fatalf("Move(%s, %s): %v", m[0], m[1], err)
		}
	}
	return g
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if !prefs.ShowHints {
			t.Errorf("Expected hints enabled by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.AveragePlies() != 0 {
			t.Errorf("Expected 0 average plies")
		}
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch() = %v, %v", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("still first launch after marking complete")
	}
}

func TestPreferences(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if !prefs.ShowHints || prefs.Flipped {
		t.Errorf("defaults not returned: %+v", prefs)
	}

	prefs.Username = "Ada"
	prefs.ShowHints = false
	prefs.Flipped = true
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Username != "Ada" || loaded.ShowHints || !loaded.Flipped {
		t.Errorf("LoadPreferences() = %+v", loaded)
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTest(t)

	g := game.New()
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}, {"d8", "d5"}} {
		if _, err := g.Move(m[0], m[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SaveGame(DefaultSlot, g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	loaded, err := s.LoadGame(DefaultSlot)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if loaded.FEN() != g.FEN() || loaded.Turn() != g.Turn() || len(loaded.History()) != 4 {
		t.Errorf("loaded %s, want %s", loaded.FEN(), g.FEN())
	}
	if last, ok := loaded.LastMove(); !ok || last.Captured != board.WhitePawn {
		t.Errorf("LastMove() = %+v, %v", last, ok)
	}
}

func TestSaveGameWithPromotion(t *testing.T) {
	s := openTest(t)

	g, err := game.FromFEN("P7/8/8/8/8/8/1k6/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetPromotion(board.A8, board.Knight); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Move("a8", "b6"); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGame("endgame", g); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadGame("endgame")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if loaded.PieceAt(board.B6) != board.WhiteKnight || loaded.FEN() != g.FEN() {
		t.Errorf("loaded %s, want %s", loaded.FEN(), g.FEN())
	}
}

func TestGameSlots(t *testing.T) {
	s := openTest(t)

	if _, err := s.LoadGame("missing"); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame(missing) err = %v", err)
	}
	for _, slot := range []string{"", "a/b", "two words"} {
		if err := s.SaveGame(slot, game.New()); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("SaveGame(%q) err = %v", slot, err)
		}
	}

	for _, slot := range []string{"beta", "alpha"} {
		if err := s.SaveGame(slot, game.New()); err != nil {
			t.Fatal(err)
		}
	}
	slots, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 || slots[0] != "alpha" || slots[1] != "beta" {
		t.Errorf("ListGames() = %v", slots)
	}

	if err := s.DeleteGame("alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadGame("alpha"); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("deleted game still loads: %v", err)
	}
	if err := s.DeleteGame("alpha"); err != nil {
		t.Errorf("deleting an empty slot: %v", err)
	}
}

func TestLoadGameRejectsTamperedRecord(t *testing.T) {
	s := openTest(t)

	rec := savedGame{
		StartFEN: board.StartFEN,
		Events:   []savedEvent{{Action: "move", From: "e2", To: "e5"}},
	}
	if err := s.put(gamePrefix+"bad", &rec); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadGame("bad"); !errors.Is(err, game.ErrIllegalDestination) {
		t.Errorf("LoadGame(bad) err = %v", err)
	}
}

func TestRecordResult(t *testing.T) {
	s := openTest(t)

	if _, err := ResultOf(game.New(), time.Minute); !errors.Is(err, ErrGameNotOver) {
		t.Errorf("ResultOf(new game) err = %v", err)
	}

	result, err := ResultOf(foolsMate(t), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if result.Winner != board.Black || result.Plies != 4 {
		t.Errorf("ResultOf() = %+v", result)
	}
	if err := s.RecordResult(result); err != nil {
		t.Fatal(err)
	}
	stale := GameResult{Status: game.Stalemate, Winner: board.NoColor, Plies: 10}
	if err := s.RecordResult(stale); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordResult(GameResult{Status: game.Check}); !errors.Is(err, ErrGameNotOver) {
		t.Errorf("RecordResult(check) err = %v", err)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 2 || stats.BlackWins != 1 || stats.WhiteWins != 0 || stats.Stalemates != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LongestGame != 10 || stats.AveragePlies() != 7 || stats.TotalPlayTime != time.Minute {
		t.Errorf("stats = %+v", stats)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(config.StorageConfig{DataDir: dir})
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	if err := s.SaveGame(DefaultSlot, foolsMate(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "db")); err != nil {
		t.Fatalf("database directory missing: %v", err)
	}

	s, err = Open(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	g, err := s.LoadGame(DefaultSlot)
	if err != nil {
		t.Fatal(err)
	}
	if g.Status() != game.Checkmate {
		t.Errorf("reloaded status = %s", g.Status())
	}
}
