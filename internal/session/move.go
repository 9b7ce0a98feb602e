package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
)

// Action is what a move did to the board.
type Action int

const (
	Place Action = iota
	Erase
	Skip
	PowerEffect
	Block
	Roll
)

func (a Action) String() string {
	switch a {
	case Place:
		return "place"
	case Erase:
		return "erase"
	case Skip:
		return "skip"
	case PowerEffect:
		return "power"
	case Block:
		return "block"
	case Roll:
		return "roll"
	default:
		return "unknown"
	}
}

// Move is an immutable history entry.
type Move struct {
	Seq     int
	Player  PlayerID
	Action  Action
	Mark    board.Mark
	Targets []board.Coord
	Note    string
}

func (m Move) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d P%d %s", m.Seq, m.Player, m.Action)
	for _, t := range m.Targets {
		sb.WriteString(" ")
		sb.WriteString(t.String())
	}
	if m.Note != "" {
		sb.WriteString(" (" + m.Note + ")")
	}
	return sb.String()
}

// Scores are cumulative tallies kept across resets.
type Scores struct {
	Wins     map[PlayerID]int
	Draws    int
	Timeouts int
}

func newScores() Scores {
	return Scores{Wins: make(map[PlayerID]int)}
}

func (s Scores) clone() Scores {
	out := Scores{Wins: make(map[PlayerID]int, len(s.Wins)), Draws: s.Draws, Timeouts: s.Timeouts}
	for id, n := range s.Wins {
		out.Wins[id] = n
	}
	return out
}

// Total returns the number of finished games.
func (s Scores) Total() int {
	n := s.Draws
	for _, w := range s.Wins {
		n += w
	}
	return n
}

// Summary formats the tallies as "X 2  O 1  draws 0" using player symbols.
func (s Scores) Summary(players []Player) string {
	ps := append([]Player(nil), players...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })

	parts := make([]string, 0, len(ps)+2)
	for _, p := range ps {
		parts = append(parts, fmt.Sprintf("%s %d", p.Symbol, s.Wins[p.ID]))
	}
	parts = append(parts, fmt.Sprintf("draws %d", s.Draws))
	if s.Timeouts > 0 {
		parts = append(parts, fmt.Sprintf("timeouts %d", s.Timeouts))
	}
	return strings.Join(parts, "  ")
}
