// Package rules decides whether a placement is legal and whether a board has
// been won or drawn. It works on any board.Board and holds no state.
package rules

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
)

var (
	// ErrIllegalMove matches every *IllegalMoveError via errors.Is.
	ErrIllegalMove = errors.New("illegal move")

	// ErrConfigurationLocked is returned when board size or other settings are
	// changed after the first move of a game.
	ErrConfigurationLocked = errors.New("settings are locked while a game is in progress")
)

// Reason explains why a move was rejected.
type Reason int

const (
	OutOfBounds Reason = iota + 1
	AlreadyOccupied
	Blocked
	WrongBoardActive
	NotYourTurn
	GameOver
)

func (r Reason) String() string {
	switch r {
	case OutOfBounds:
		return "out of bounds"
	case AlreadyOccupied:
		return "cell already occupied"
	case Blocked:
		return "cell is blocked"
	case WrongBoardActive:
		return "play is restricted to another board"
	case NotYourTurn:
		return "not your turn"
	case GameOver:
		return "game is over"
	default:
		return "unknown"
	}
}

// IllegalMoveError is a rejected placement. The board is never modified when
// one is returned.
type IllegalMoveError struct {
	Reason Reason
	Target board.Coord
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move at %s: %s", e.Target, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// Illegal builds an *IllegalMoveError.
func Illegal(r Reason, at board.Coord) error {
	return &IllegalMoveError{Reason: r, Target: at}
}

// ReasonOf extracts the rejection reason from err.
func ReasonOf(err error) (Reason, bool) {
	var ime *IllegalMoveError
	if errors.As(err, &ime) {
		return ime.Reason, true
	}
	return 0, false
}

// Constraints are the variant predicates consulted by Validate. The zero
// value accepts any vacant in-bounds cell.
type Constraints struct {
	// Over rejects every move once the game has ended.
	Over bool

	// Actor and Turn are compared when CheckTurn is set.
	CheckTurn bool
	Actor     int
	Turn      int

	// Region restricts play to part of the board (active sub-board, rolled
	// cell). Nil means unrestricted.
	Region func(board.Coord) bool

	// Replace permits placing over an occupied cell holding the given mark.
	Replace func(board.Mark) bool
}

// Validate checks a candidate placement on b. It returns nil when the move
// is legal and an *IllegalMoveError otherwise.
func Validate(b board.Board, at board.Coord, c Constraints) error {
	switch {
	case c.Over:
		return Illegal(GameOver, at)
	case c.CheckTurn && c.Actor != c.Turn:
		return Illegal(NotYourTurn, at)
	case !b.InBounds(at):
		return Illegal(OutOfBounds, at)
	case c.Region != nil && !c.Region(at):
		return Illegal(WrongBoardActive, at)
	}

	m := b.At(at)
	switch {
	case m == board.Blocked:
		return Illegal(Blocked, at)
	case m.Vacant():
		return nil
	case c.Replace != nil && c.Replace(m):
		return nil
	default:
		return Illegal(AlreadyOccupied, at)
	}
}
