package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	gamePrefix     = "game/"
)

// DefaultSlot is the save slot used when none is named.
const DefaultSlot = "autosave"

var (
	ErrNoSavedGame = errors.New("no saved game")
	ErrGameNotOver = errors.New("game is not over")
	ErrInvalidSlot = errors.New("invalid save slot name")
)

// Preferences stores user settings that change while playing.
type Preferences struct {
	Username   string    `json:"username"`
	ShowHints  bool      `json:"show_hints"`
	Flipped    bool      `json:"flipped"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Username:   "Player",
		ShowHints:  true,
		LastPlayed: time.Now(),
	}
}

// GameStats counts finished games by outcome.
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Stalemates    int           `json:"stalemates"`
	TotalPlies    int           `json:"total_plies"`
	LongestGame   int           `json:"longest_game"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// AveragePlies returns the mean number of moves per finished game.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// GameResult is the outcome of a finished game.
type GameResult struct {
	Status   game.Status
	Winner   board.Color
	Plies    int
	Duration time.Duration
}

// ResultOf summarises a finished game. It fails with ErrGameNotOver while the
// game still accepts moves.
func ResultOf(g *game.Game, d time.Duration) (GameResult, error) {
	if !g.Status().Terminal() {
		return GameResult{}, fmt.Errorf("%s: %w", g.Status(), ErrGameNotOver)
	}
	winner, _ := g.Winner()
	plies := 0
	for _, e := range g.History() {
		if e.Action == game.ActionMove {
			plies++
		}
	}
	return GameResult{Status: g.Status(), Winner: winner, Plies: plies, Duration: d}, nil
}

// savedEvent is the stored form of one history entry.
type savedEvent struct {
	Action    string `json:"action"`
	From      string `json:"from"`
	To        string `json:"to,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

type savedGame struct {
	StartFEN string       `json:"start_fen"`
	Events   []savedEvent `json:"events"`
	FEN      string       `json:"fen"`
	SavedAt  time.Time    `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database described by cfg: in memory, or under the
// data directory it names.
func NewStorage(cfg config.StorageConfig) (*Storage, error) {
	if cfg.InMemory {
		return OpenInMemory()
	}
	dbDir, err := GetDatabaseDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordResult adds a finished game to the statistics.
func (s *Storage) RecordResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	switch result.Status {
	case game.Checkmate:
		if result.Winner == board.White {
			stats.WhiteWins++
		} else {
			stats.BlackWins++
		}
	case game.Stalemate:
		stats.Stalemates++
	default:
		return fmt.Errorf("%s: %w", result.Status, ErrGameNotOver)
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}

	return s.SaveStats(stats)
}

// SaveGame stores the game's start position and event log under slot,
// replacing any game already saved there.
func (s *Storage) SaveGame(slot string, g *game.Game) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	rec := savedGame{StartFEN: g.StartFEN(), FEN: g.FEN(), SavedAt: time.Now()}
	for _, e := range g.History() {
		se := savedEvent{Action: e.Action.String(), From: e.From.String()}
		if e.Action == game.ActionPromote {
			se.Promotion = string(e.Promotion.Char())
		} else {
			se.To = e.To.String()
		}
		rec.Events = append(rec.Events, se)
	}
	return s.put(gamePrefix+slot, &rec)
}

// LoadGame rebuilds the game saved under slot by replaying its events, so a
// damaged record fails instead of producing an illegal position.
func (s *Storage) LoadGame(slot string) (*game.Game, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	var rec savedGame
	found, err := s.get(gamePrefix+slot, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", slot, ErrNoSavedGame)
	}

	events := make([]game.Event, 0, len(rec.Events))
	for i, se := range rec.Events {
		e, err := se.event()
		if err != nil {
			return nil, fmt.Errorf("saved game %s, event %d: %w", slot, i+1, err)
		}
		events = append(events, e)
	}

	g, err := game.Replay(rec.StartFEN, events)
	if err != nil {
		return nil, fmt.Errorf("saved game %s: %w", slot, err)
	}
	if rec.FEN != "" && g.FEN() != rec.FEN {
		return nil, fmt.Errorf("saved game %s: replay reached %q, record says %q", slot, g.FEN(), rec.FEN)
	}
	return g, nil
}

// DeleteGame removes the game saved under slot. Deleting an empty slot is not an error.
func (s *Storage) DeleteGame(slot string) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gamePrefix + slot))
	})
}

// ListGames returns the names of all save slots in key order.
func (s *Storage) ListGames() ([]string, error) {
	var slots []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			slots = append(slots, strings.TrimPrefix(key, gamePrefix))
		}
		return nil
	})
	return slots, err
}

func (se savedEvent) event() (game.Event, error) {
	from, err := board.ParseSquare(se.From)
	if err != nil {
		return game.Event{}, err
	}

	switch se.Action {
	case game.ActionMove.String():
		to, err := board.ParseSquare(se.To)
		if err != nil {
			return game.Event{}, err
		}
		return game.Event{Action: game.ActionMove, From: from, To: to}, nil
	case game.ActionPromote.String():
		kind, ok := board.ParsePieceType(se.Promotion)
		if !ok {
			return game.Event{}, fmt.Errorf("%q: %w", se.Promotion, game.ErrInvalidPromotion)
		}
		return game.Event{Action: game.ActionPromote, From: from, To: from, Promotion: kind}, nil
	}
	return game.Event{}, fmt.Errorf("unknown action %q", se.Action)
}

func validSlot(slot string) error {
	if slot == "" || strings.ContainsAny(slot, "/ \t\n") {
		return fmt.Errorf("%q: %w", slot, ErrInvalidSlot)
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v and reports whether the key existed.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
