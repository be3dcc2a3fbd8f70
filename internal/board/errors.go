package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNotation = errors.New("invalid square notation")
	ErrEmptySquare     = errors.New("no piece on square")
	ErrWrongOwner      = errors.New("piece belongs to the other side")
	ErrInvalidFEN      = errors.New("invalid FEN")
)

// InvariantError reports a board that breaks the one-king-per-side rule.
// The engine never produces such a board; meeting one inside a check query is fatal.
type InvariantError struct {
	Color Color
	Kings int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board invariant violated: %s has %d kings", e.Color, e.Kings)
}
