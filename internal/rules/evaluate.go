package rules

import "github.com/vovakirdan/tui-tictactoe/internal/board"

// Outcome is the result of evaluating a board.
type Outcome struct {
	Winner board.Mark    // Empty when nobody has won
	Line   []board.Coord // the winning run, ordered along its direction
	Draw   bool
}

// Decided reports whether the game has ended.
func (o Outcome) Decided() bool {
	return o.Winner != board.Empty || o.Draw
}

// Run returns the maximal run of cells equal to the mark at from, walking
// both ways along dir. On wrapping boards the run never revisits a cell.
func Run(b board.Board, from board.Coord, dir board.Coord) []board.Coord {
	m := b.At(from)
	limit := -1
	if g := b.Geometry(); g.Wrap {
		limit = g.Width
	}

	back := walk(b, from, dir.Neg(), m, limit-1)
	fwdLimit := -1
	if limit > 0 {
		fwdLimit = limit - 1 - len(back)
	}
	fwd := walk(b, from, dir, m, fwdLimit)

	line := make([]board.Coord, 0, len(back)+1+len(fwd))
	for i := len(back) - 1; i >= 0; i-- {
		line = append(line, back[i])
	}
	line = append(line, b.Normalize(from))
	return append(line, fwd...)
}

// walk collects consecutive cells holding m, starting next to from. A
// negative limit means no cap.
func walk(b board.Board, from, dir board.Coord, m board.Mark, limit int) []board.Coord {
	var out []board.Coord
	c := from
	for limit < 0 || len(out) < limit {
		c = c.Add(dir)
		if !b.InBounds(c) || b.At(c) != m {
			break
		}
		out = append(out, b.Normalize(c))
	}
	return out
}

// winningRun scans every direction through c and returns the first run of at
// least WinLength player marks.
func winningRun(b board.Board, c board.Coord) []board.Coord {
	if !b.At(c).IsPlayer() {
		return nil
	}
	k := b.Geometry().WinLength
	for _, dir := range b.Geometry().Directions() {
		if line := Run(b, c, dir); len(line) >= k {
			return line
		}
	}
	return nil
}

// Evaluate checks only the lines through the last placed cell. This is the
// scan used after every move, and the only one that is cheap on unbounded
// boards.
func Evaluate(b board.Board, last board.Coord) Outcome {
	if line := winningRun(b, last); line != nil {
		return Outcome{Winner: b.At(last), Line: line}
	}
	return Outcome{Draw: b.Full()}
}

// EvaluateBoard scans every occupied cell. It is used after effects that
// change many cells at once and as the reference for Evaluate.
func EvaluateBoard(b board.Board) Outcome {
	for _, c := range b.Occupied() {
		if line := winningRun(b, c); line != nil {
			return Outcome{Winner: b.At(c), Line: line}
		}
	}
	return Outcome{Draw: b.Full()}
}
