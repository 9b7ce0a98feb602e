// Package session is the turn and score controller shared by every variant.
// A Session owns the player list, the turn order, the move history and the
// cumulative tallies; it never touches the board itself.
package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
)

// ErrGameOver is returned when a move is recorded after the game has ended.
var ErrGameOver = errors.New("session: game is over")

// PlayerID identifies a player within a session. IDs start at 1.
type PlayerID int

// Player is a participant in turn order.
type Player struct {
	ID     PlayerID
	Name   string
	Symbol string
	Mark   board.Mark
	Color  core.Color
}

// Phase is the lifecycle stage of a game.
type Phase int

const (
	Setup Phase = iota
	InProgress
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case InProgress:
		return "in progress"
	case Terminal:
		return "over"
	default:
		return "unknown"
	}
}

// Result is how a game ended.
type Result int

const (
	None Result = iota
	Win
	Draw
	Timeout
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Timeout:
		return "timeout"
	default:
		return "none"
	}
}

// Effect tells Advance how to move the turn pointer.
type Effect int

const (
	Normal Effect = iota // next player in turn order
	Extra                // the same player moves again
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session aggregates players, turn order, history and cumulative scores for
// one variant instance.
type Session struct {
	id       string
	players  []Player
	order    []PlayerID
	turn     int
	phase    Phase
	result   Result
	winner   PlayerID
	history  []Move
	authors  map[board.Coord]int
	forfeits map[PlayerID]int
	scores   Scores
	logger   *log.Logger
}

// New creates a session in Setup with the given players. Turn order follows
// the slice order.
func New(players []Player, opts ...Option) *Session {
	s := &Session{
		players: append([]Player(nil), players...),
		scores:  newScores(),
		logger:  log.Default(),
	}
	for _, p := range players {
		s.order = append(s.order, p.ID)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// ID is a unique identifier for the current game; it changes on every Reset.
func (s *Session) ID() string { return s.id }

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Result() Result { return s.result }
func (s *Session) Over() bool { return s.phase == Terminal }
func (s *Session) Scores() Scores { return s.scores.clone() }
func (s *Session) Players() []Player { return append([]Player(nil), s.players...) }

// Player looks up a player by ID.
func (s *Session) Player(id PlayerID) (Player, bool) {
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerByMark looks up the player who owns a board mark.
func (s *Session) PlayerByMark(m board.Mark) (Player, bool) {
	for _, p := range s.players {
		if p.Mark == m {
			return p, true
		}
	}
	return Player{}, false
}

// Current returns the player whose turn it is.
func (s *Session) Current() Player {
	p, _ := s.Player(s.order[s.turn])
	return p
}

// Next returns the player who would move after the current one.
func (s *Session) Next() Player {
	p, _ := s.Player(s.order[(s.turn+1)%len(s.order)])
	return p
}

// Opponent returns the other player of a two-player session.
func (s *Session) Opponent(id PlayerID) Player {
	for _, p := range s.players {
		if p.ID != id {
			return p
		}
	}
	return Player{}
}

// TurnOrder returns the current order of play.
func (s *Session) TurnOrder() []PlayerID {
	return append([]PlayerID(nil), s.order...)
}

// SetTurnOrder replaces the order of play. It is only allowed during Setup.
func (s *Session) SetTurnOrder(order []PlayerID) error {
	if s.phase != Setup {
		return rules.ErrConfigurationLocked
	}
	if len(order) != len(s.players) {
		return fmt.Errorf("session: turn order has %d players, expected %d", len(order), len(s.players))
	}
	seen := make(map[PlayerID]bool, len(order))
	for _, id := range order {
		if _, ok := s.Player(id); !ok || seen[id] {
			return fmt.Errorf("session: invalid turn order %v", order)
		}
		seen[id] = true
	}
	s.order = append(s.order[:0], order...)
	s.turn = 0
	s.logger.Debug("turn order set", "session", s.id, "order", order)
	return nil
}

// ShuffleTurnOrder randomizes the order of play during Setup.
func (s *Session) ShuffleTurnOrder(rng *rand.Rand) error {
	order := s.TurnOrder()
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return s.SetTurnOrder(order)
}

// Begin moves a game from Setup to InProgress. Recording a move does this
// implicitly.
func (s *Session) Begin() {
	if s.phase == Setup {
		s.phase = InProgress
		s.logger.Debug("game started", "session", s.id)
	}
}

// Record appends a move made by the current player and returns it.
func (s *Session) Record(action Action, mark board.Mark, targets ...board.Coord) (Move, error) {
	return s.RecordFor(s.Current().ID, action, mark, targets...)
}

// RecordFor appends a move credited to a specific player.
func (s *Session) RecordFor(id PlayerID, action Action, mark board.Mark, targets ...board.Coord) (Move, error) {
	if s.Over() {
		return Move{}, ErrGameOver
	}
	s.Begin()

	mv := Move{
		Seq:     len(s.history) + 1,
		Player:  id,
		Action:  action,
		Mark:    mark,
		Targets: append([]board.Coord(nil), targets...),
	}
	s.history = append(s.history, mv)

	for _, c := range targets {
		switch action {
		case Place:
			s.authors[c] = len(s.history) - 1
		case Erase:
			delete(s.authors, c)
		}
	}
	return mv, nil
}

// Annotate attaches a note to the most recent move.
func (s *Session) Annotate(note string) {
	if n := len(s.history); n > 0 {
		s.history[n-1].Note = note
	}
}

// Forfeit makes a player lose their next turn. When the turn pointer would
// land on them, it moves one position further instead.
func (s *Session) Forfeit(id PlayerID) {
	s.forfeits[id]++
}

// Forfeits returns how many turns a player still has to sit out.
func (s *Session) Forfeits(id PlayerID) int {
	return s.forfeits[id]
}

// Advance moves the turn pointer after a completed move.
func (s *Session) Advance(effect Effect) {
	if s.Over() || effect == Extra {
		return
	}
	for i := 0; i <= len(s.order); i++ {
		s.turn = (s.turn + 1) % len(s.order)
		id := s.order[s.turn]
		if s.forfeits[id] == 0 {
			break
		}
		s.forfeits[id]--
		s.logger.Debug("turn forfeited", "session", s.id, "player", id)
	}
}

// Finish ends the game and credits the outcome. Calling it again is a no-op,
// so a result is tallied exactly once.
func (s *Session) Finish(result Result, winner PlayerID) {
	if s.Over() {
		return
	}
	s.phase = Terminal
	s.result = result
	s.winner = winner

	switch result {
	case Win:
		s.scores.Wins[winner]++
	case Timeout:
		s.scores.Wins[winner]++
		s.scores.Timeouts++
	case Draw:
		s.scores.Draws++
	}
	s.logger.Info("game finished", "session", s.id, "result", result, "winner", winner, "moves", len(s.history))
}

// Winner returns the winning player once the game has been won.
func (s *Session) Winner() (Player, bool) {
	if s.result != Win && s.result != Timeout {
		return Player{}, false
	}
	return s.Player(s.winner)
}

// History returns a copy of the move log.
func (s *Session) History() []Move {
	return append([]Move(nil), s.history...)
}

// Moves returns how many moves of the given action have been recorded.
func (s *Session) Moves(action Action) int {
	n := 0
	for _, mv := range s.history {
		if mv.Action == action {
			n++
		}
	}
	return n
}

// AuthorOf returns the move that last placed a mark on c.
func (s *Session) AuthorOf(c board.Coord) (Move, bool) {
	i, ok := s.authors[c]
	if !ok {
		return Move{}, false
	}
	return s.history[i], true
}

// LastAuthor returns the player whose placement is the most recent among the
// given cells.
func (s *Session) LastAuthor(cells []board.Coord) (PlayerID, bool) {
	best := -1
	for _, c := range cells {
		if i, ok := s.authors[c]; ok && i > best {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return s.history[best].Player, true
}

// Reset starts a new game in Setup. Scores and turn order are kept.
func (s *Session) Reset() {
	s.id = uuid.NewString()
	s.turn = 0
	s.phase = Setup
	s.result = None
	s.winner = 0
	s.history = nil
	s.authors = make(map[board.Coord]int)
	s.forfeits = make(map[PlayerID]int)
}

// ResetAll starts a new game and zeroes the cumulative scores.
func (s *Session) ResetAll() {
	s.scores = newScores()
	s.Reset()
	s.logger.Debug("scores cleared", "session", s.id)
}
