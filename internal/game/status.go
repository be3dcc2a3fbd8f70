package game

// Status is the state of a game after the last transition.
type Status uint8

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate
}
