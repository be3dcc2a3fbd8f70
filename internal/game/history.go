package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// Action distinguishes the two kinds of history entries.
type Action uint8

const (
	ActionMove Action = iota
	ActionPromote
)

func (a Action) String() string {
	if a == ActionPromote {
		return "promote"
	}
	return "move"
}

// Event records one successful MakeMove or SetPromotion call.
type Event struct {
	Action    Action
	From      board.Square
	To        board.Square
	Piece     board.Piece
	Captured  board.Piece
	Promotion board.PieceType
	SAN       string
	Status    Status
}

// String returns the event in coordinate form, e.g. "e2e4" or "e8=q".
func (e Event) String() string {
	if e.Action == ActionPromote {
		return fmt.Sprintf("%s=%c", e.From, e.Promotion.Char())
	}
	return e.From.String() + e.To.String()
}

// History returns a copy of the events applied so far.
func (g *Game) History() []Event {
	out := make([]Event, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recent move, ignoring promotions.
func (g *Game) LastMove() (Event, bool) {
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].Action == ActionMove {
			return g.history[i], true
		}
	}
	return Event{}, false
}

// Replay rebuilds a game by applying events to the position startFEN.
// An empty startFEN means the standard starting position.
func Replay(startFEN string, events []Event) (*Game, error) {
	g := New()
	if startFEN != "" && startFEN != board.StartFEN {
		var err error
		if g, err = FromFEN(startFEN); err != nil {
			return nil, err
		}
	}

	for i, e := range events {
		var err error
		switch e.Action {
		case ActionMove:
			_, err = g.MakeMove(e.From, e.To)
		case ActionPromote:
			err = g.SetPromotion(e.From, e.Promotion)
		default:
			err = fmt.Errorf("unknown action %d", e.Action)
		}
		if err != nil {
			return nil, fmt.Errorf("replay event %d (%s): %w", i+1, e, err)
		}
	}
	return g, nil
}
