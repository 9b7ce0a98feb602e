package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 12 {
		t.Errorf("Height() = %d, expected 12", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenCellColor(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawTextColor(2, 1, "XO", ColorBrightCyan)

	c := s.GetCell(2, 1)
	if c.Rune != 'X' || c.Color != ColorBrightCyan {
		t.Errorf("GetCell(2, 1) = %+v, expected X in bright cyan", c)
	}
	if got := s.GetCell(4, 1).Color; got != ColorDefault {
		t.Errorf("GetCell(4, 1).Color = %v, expected default", got)
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(10, 1)

	s.DrawText(0, 0, "Δ·X")

	if s.Get(0, 0) != 'Δ' || s.Get(1, 0) != '·' || s.Get(2, 0) != 'X' {
		t.Errorf("Row(0) = %q, expected multi-byte runes in consecutive cells", s.Row(0))
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawText(0, 0, "XXXXX")

	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Clear() left content: %q", s.String())
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := []string{
		"┌───┐",
		"│   │",
		"└───┘",
	}
	for y, row := range expected {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X')

	s.Resize(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Errorf("Resize() = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize() should clear the buffer")
	}
}

func TestScreenResizeNegative(t *testing.T) {
	s := NewScreen(3, 3)

	s.Resize(-2, -1)

	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("Resize(-2, -1) = %dx%d, expected 0x0", s.Width(), s.Height())
	}
}
