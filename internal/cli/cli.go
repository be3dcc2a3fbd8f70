// Package cli implements a line-oriented command loop for playing a game in a terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Store is the persistence the loop needs. *storage.Storage satisfies it.
type Store interface {
	SaveGame(slot string, g *game.Game) error
	LoadGame(slot string) (*game.Game, error)
	RecordResult(result storage.GameResult) error
	LoadStats() (*storage.GameStats, error)
}

var errNoStore = errors.New("storage is disabled")

// CLI reads commands, applies them to one game and writes replies.
type CLI struct {
	game  *game.Game
	store Store
	out   io.Writer

	started  time.Time
	recorded bool
	quit     bool
}

// New creates a command loop writing to out. store may be nil, which
// disables save, load and stats.
func New(out io.Writer, store Store) *CLI {
	return &CLI{
		game:    game.New(),
		store:   store,
		out:     out,
		started: time.Now(),
	}
}

// Game returns the game being played.
func (c *CLI) Game() *game.Game {
	return c.game
}

// Run reads commands from in until it is exhausted or "quit" is given.
func (c *CLI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.quit = false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c.Execute(line)
		if c.quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line.
func (c *CLI) Execute(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "new":
		c.reset(game.New())
		c.printf("new game\n")
	case "move", "m":
		err = c.handleMove(args)
	case "promote", "p":
		err = c.handlePromote(args)
	case "moves":
		err = c.handleMoves(args)
	case "board", "d":
		c.printf("%s", c.game.String())
	case "status":
		c.printStatus()
	case "fen":
		c.printf("%s\n", c.game.FEN())
	case "position":
		err = c.handlePosition(args)
	case "history":
		c.handleHistory()
	case "save":
		err = c.handleSave(args)
	case "load":
		err = c.handleLoad(args)
	case "stats":
		err = c.handleStats()
	case "help":
		c.printf("%s", helpText)
	case "quit", "exit":
		c.quit = true
	default:
		// A bare coordinate move such as "e2e4".
		if len(parts) == 1 && len(cmd) == 4 {
			err = c.handleMove(parts)
		} else {
			err = fmt.Errorf("unknown command %q (try help)", parts[0])
		}
	}

	if err != nil {
		log.Printf("[CLI] %s: %v", line, err)
		c.printf("error: %v\n", err)
	}
}

const helpText = `commands:
  new                       start a new game
  move e2 e4 | e2e4         move a piece
  promote e8 q              replace a pawn on its last rank (q, r, b, n)
  moves e2                  list legal destinations
  board                     print the board
  status                    print side to move and status
  fen                       print the position as FEN
  position startpos|fen <fen> [moves e2e4 ...]
  history                   list moves played
  save [slot] | load [slot] store or restore a game
  stats                     finished game statistics
  quit
`

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) reset(g *game.Game) {
	c.game = g
	c.started = time.Now()
	c.recorded = g.Status().Terminal()
}

// parseMoveArgs accepts "e2 e4" or "e2e4".
func parseMoveArgs(args []string) (board.Square, board.Square, error) {
	var from, to string
	switch {
	case len(args) == 2:
		from, to = args[0], args[1]
	case len(args) == 1 && len(args[0]) == 4:
		from, to = args[0][:2], args[0][2:]
	default:
		return board.NoSquare, board.NoSquare, fmt.Errorf("usage: move <from> <to>")
	}

	src, err := board.ParseSquare(strings.ToLower(from))
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	dst, err := board.ParseSquare(strings.ToLower(to))
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	return src, dst, nil
}

func (c *CLI) handleMove(args []string) error {
	from, to, err := parseMoveArgs(args)
	if err != nil {
		return err
	}

	status, err := c.game.MakeMove(from, to)
	if err != nil {
		log.Printf("[MOVE] rejected %s%s: %v", from, to, err)
		return err
	}

	last, _ := c.game.LastMove()
	c.printf("ok %s %s\n", last.SAN, status)
	c.afterMove()
	return nil
}

func (c *CLI) handlePromote(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: promote <square> <q|r|b|n>")
	}
	sq, err := board.ParseSquare(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	kind, ok := board.ParsePieceType(args[1])
	if !ok {
		return fmt.Errorf("%q: %w", args[1], game.ErrInvalidPromotion)
	}

	if err := c.game.SetPromotion(sq, kind); err != nil {
		return err
	}
	c.printf("ok %s=%s\n", sq, kind)
	return nil
}

func (c *CLI) handleMoves(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: moves <square>")
	}
	sq, err := board.ParseSquare(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	moves, err := c.game.LegalMoves(sq)
	if err != nil {
		return err
	}
	c.printf("%s: %s\n", sq, moves)
	return nil
}

// afterMove reports prompts and results that follow a successful move.
func (c *CLI) afterMove() {
	if pending := c.game.PromotionSquares(); !pending.IsEmpty() && !c.game.Status().Terminal() {
		c.printf("%s may promote on %s\n", c.game.Turn(), pending)
	}
	if !c.game.Status().Terminal() {
		return
	}

	if winner, ok := c.game.Winner(); ok {
		c.printf("checkmate, %s wins\n", winner)
	} else {
		c.printf("stalemate\n")
	}
	c.recordResult()
}

func (c *CLI) recordResult() {
	if c.recorded || c.store == nil {
		return
	}
	result, err := storage.ResultOf(c.game, time.Since(c.started))
	if err != nil {
		return
	}
	if err := c.store.RecordResult(result); err != nil {
		log.Printf("[STORAGE] Failed to record result: %v", err)
		return
	}
	c.recorded = true
}

func (c *CLI) printStatus() {
	c.printf("%s to move: %s\n", c.game.Turn(), c.game.Status())
	if pending := c.game.PromotionSquares(); !pending.IsEmpty() {
		c.printf("pending promotion on %s\n", pending)
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4 e8=q
func (c *CLI) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: position startpos|fen <fen> [moves ...]")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var g *game.Game
	switch args[0] {
	case "startpos":
		g = game.New()
	case "fen":
		var err error
		if g, err = game.FromFEN(strings.Join(args[1:movesAt], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown position type %q", args[0])
	}

	if movesAt < len(args) {
		for _, tok := range args[movesAt+1:] {
			if err := applyToken(g, tok); err != nil {
				return fmt.Errorf("%s: %w", tok, err)
			}
		}
	}

	c.reset(g)
	c.printStatus()
	return nil
}

// applyToken applies "e2e4" as a move or "e8=q" as a promotion.
func applyToken(g *game.Game, tok string) error {
	tok = strings.ToLower(tok)
	if sq, kind, ok := strings.Cut(tok, "="); ok {
		src, err := board.ParseSquare(sq)
		if err != nil {
			return err
		}
		pt, ok := board.ParsePieceType(kind)
		if !ok {
			return game.ErrInvalidPromotion
		}
		return g.SetPromotion(src, pt)
	}

	from, to, err := parseMoveArgs([]string{tok})
	if err != nil {
		return err
	}
	_, err = g.MakeMove(from, to)
	return err
}

func (c *CLI) handleHistory() {
	history := c.game.History()
	if len(history) == 0 {
		c.printf("no moves\n")
		return
	}
	for i, e := range history {
		c.printf("%d. %s (%s)\n", i+1, e.SAN, e)
	}
}

func (c *CLI) handleSave(args []string) error {
	if c.store == nil {
		return errNoStore
	}
	slot := slotArg(args)
	if err := c.store.SaveGame(slot, c.game); err != nil {
		return err
	}
	c.printf("saved %s\n", slot)
	return nil
}

func (c *CLI) handleLoad(args []string) error {
	if c.store == nil {
		return errNoStore
	}
	slot := slotArg(args)
	g, err := c.store.LoadGame(slot)
	if err != nil {
		return err
	}
	c.reset(g)
	c.printf("loaded %s\n", slot)
	c.printStatus()
	return nil
}

func slotArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return storage.DefaultSlot
}

func (c *CLI) handleStats() error {
	if c.store == nil {
		return errNoStore
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		return err
	}
	c.printf("games %d, white wins %d, black wins %d, stalemates %d, average length %.1f\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Stalemates, stats.AveragePlies())
	return nil
}
