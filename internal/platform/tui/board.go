package tui

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
)

const (
	cellWidth = 3 // " X " or "[X]"
	panelGap  = 4
	groupGap  = 1
)

// cursor addresses a cell on one of the variant's panels.
type cursor struct {
	panel, x, y int
}

// panelSize returns the drawn size of a panel including its title row.
func panelSize(p registry.Panel) (w, h int) {
	w = p.Width * cellWidth
	h = p.Height
	if p.Group > 0 {
		w += (p.Width - 1) / p.Group * groupGap
		h += (p.Height - 1) / p.Group
	}
	return max(w, utf8.RuneCountInString(p.Title)), h + 1
}

// cellOffset returns where cell (x, y) is drawn relative to the panel's
// first board row.
func cellOffset(p registry.Panel, x, y int) (int, int) {
	ox, oy := x*cellWidth, y
	if p.Group > 0 {
		ox += x / p.Group * groupGap
		oy += y / p.Group
	}
	return ox, oy
}

// layoutPanels places panels left to right starting at (x0, y0), wrapping
// to a new row when the next panel would not fit in width.
func layoutPanels(panels []registry.Panel, x0, y0, width int) []core.Rect {
	rects := make([]core.Rect, len(panels))
	x, y, rowH := x0, y0, 0
	for i, p := range panels {
		w, h := panelSize(p)
		if x > x0 && x+w > width {
			x = x0
			y += rowH + 1
			rowH = 0
		}
		rects[i] = core.NewRect(x, y, w, h)
		x += w + panelGap
		rowH = max(rowH, h)
	}
	return rects
}

// boardBottom returns the first free row below the laid out panels.
func boardBottom(rects []core.Rect, y0 int) int {
	bottom := y0
	for _, r := range rects {
		bottom = max(bottom, r.Bottom())
	}
	return bottom
}

// drawPanels renders every panel and the cursor.
func drawPanels(s *core.Screen, panels []registry.Panel, rects []core.Rect, cur cursor) {
	for i, p := range panels {
		r := rects[i]
		titleColor := core.ColorGray
		if p.Active {
			titleColor = core.ColorBrightWhite
		}
		s.DrawTextColor(r.X, r.Y, p.Title, titleColor)

		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				ox, oy := cellOffset(p, x, y)
				drawCell(s, r.X+ox, r.Y+1+oy, p.At(x, y), cur == cursor{panel: i, x: x, y: y})
			}
		}
	}
}

func drawCell(s *core.Screen, x, y int, c registry.Cell, selected bool) {
	glyph, _ := utf8.DecodeRuneInString(c.Glyph)
	color := c.Color
	if c.Glyph == "" {
		glyph = '·'
		color = core.ColorGray
	}
	if c.Dim && !c.Highlight {
		color = core.ColorGray
	}
	s.SetCell(x+1, y, core.Cell{Rune: glyph, Color: color, Bold: c.Highlight})

	if selected {
		s.SetCell(x, y, core.Cell{Rune: '[', Color: core.ColorBrightYellow})
		s.SetCell(x+2, y, core.Cell{Rune: ']', Color: core.ColorBrightYellow})
	}
}

// clamp keeps the cursor on an existing cell after the panels change.
func (c cursor) clamp(panels []registry.Panel) cursor {
	if len(panels) == 0 {
		return cursor{}
	}
	c.panel = core.Clamp(c.panel, 0, len(panels)-1)
	p := panels[c.panel]
	c.x = core.Clamp(c.x, 0, max(p.Width-1, 0))
	c.y = core.Clamp(c.y, 0, max(p.Height-1, 0))
	return c
}

// move steps the cursor. Moving past a panel's left or right edge continues
// on the neighbouring panel.
func (c cursor) move(dx, dy int, panels []registry.Panel) cursor {
	if len(panels) == 0 {
		return c
	}
	c = c.clamp(panels)
	p := panels[c.panel]
	c.x += dx
	c.y = core.Clamp(c.y+dy, 0, max(p.Height-1, 0))
	switch {
	case c.x < 0 && c.panel > 0:
		c.panel--
		c.x = panels[c.panel].Width - 1
	case c.x >= p.Width && c.panel < len(panels)-1:
		c.panel++
		c.x = 0
	}
	return c.clamp(panels)
}

// jump moves to the same position on another panel.
func (c cursor) jump(delta int, panels []registry.Panel) cursor {
	if len(panels) == 0 {
		return c
	}
	c.panel = core.Wrap(c.panel+delta, len(panels))
	return c.clamp(panels)
}

// target returns what the cursor points at.
func (c cursor) target(panels []registry.Panel) (registry.Target, bool) {
	if len(panels) == 0 {
		return registry.Target{}, false
	}
	c = c.clamp(panels)
	return panels[c.panel].At(c.x, c.y).Target, true
}

// hit maps a screen position to the cell drawn there.
func hit(panels []registry.Panel, rects []core.Rect, sx, sy int) (cursor, bool) {
	for i, p := range panels {
		r := rects[i]
		if !r.Contains(sx, sy) {
			continue
		}
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				ox, oy := cellOffset(p, x, y)
				cx, cy := r.X+ox, r.Y+1+oy
				if sy == cy && sx >= cx && sx < cx+cellWidth {
					return cursor{panel: i, x: x, y: y}, true
				}
			}
		}
	}
	return cursor{}, false
}
