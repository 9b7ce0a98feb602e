package rules

import "github.com/vovakirdan/tui-tictactoe/internal/board"

// MagicSum is the line total that wins the numeric variant.
const MagicSum = 15

// Lines enumerates every window of WinLength cells on a bounded grid, in each
// direction of the geometry. Wrapping boards include windows that cross the
// seam.
func Lines(g board.Geometry) [][]board.Coord {
	grid := board.NewGrid(g)
	k := g.WinLength
	var out [][]board.Coord
	for _, start := range grid.Cells() {
		for _, dir := range g.Directions() {
			line := make([]board.Coord, 0, k)
			for i := 0; i < k; i++ {
				c := start.Add(dir.Scale(i))
				if !grid.InBounds(c) {
					break
				}
				line = append(line, grid.Normalize(c))
			}
			if len(line) == k && !(g.Wrap && dir.X != 0 && k > g.Width) {
				out = append(out, line)
			}
		}
	}
	return out
}

// LinesThrough filters lines to those containing c.
func LinesThrough(lines [][]board.Coord, c board.Coord) [][]board.Coord {
	var out [][]board.Coord
	for _, line := range lines {
		for _, lc := range line {
			if lc == c {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

// SumLine returns the first fully occupied line whose marks add up to target.
func SumLine(b board.Board, lines [][]board.Coord, target int) ([]board.Coord, bool) {
	for _, line := range lines {
		sum := 0
		complete := true
		for _, c := range line {
			m := b.At(c)
			if !m.IsPlayer() {
				complete = false
				break
			}
			sum += int(m)
		}
		if complete && sum == target {
			return line, true
		}
	}
	return nil, false
}

// Parity is the number class a numeric player draws from.
type Parity int

const (
	Odd Parity = iota + 1
	Even
)

// ParityOf classifies a placed number.
func ParityOf(m board.Mark) Parity {
	if m%2 == 0 {
		return Even
	}
	return Odd
}

// SumWinner attributes a completed magic line. A line made only of odd
// numbers goes to the odd player and one made only of even numbers to the
// even player; a mixed line goes to whoever completed it.
func SumWinner(values []board.Mark, completer Parity) Parity {
	odd, even := 0, 0
	for _, v := range values {
		if ParityOf(v) == Odd {
			odd++
		} else {
			even++
		}
	}
	switch {
	case even == 0 && odd > 0:
		return Odd
	case odd == 0 && even > 0:
		return Even
	default:
		return completer
	}
}
