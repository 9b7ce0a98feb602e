package variants

import (
	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
)

func init() {
	registry.Register("classic", func(config.Variants) registry.Variant { return NewClassic() })
	registry.Register("misere", func(config.Variants) registry.Variant { return NewMisere() })
	registry.Register("3d", func(config.Variants) registry.Variant { return NewCube() })
}

// NewClassic is 3x3, three in a row.
func NewClassic() registry.Variant {
	return newLineGame("classic", "Classic", "Three in a row on a 3x3 board", xo(), board.Plane(3, 3, 3))
}

// NewMisere is classic with the goal inverted: whoever completes a line loses.
func NewMisere() registry.Variant {
	g := newLineGame("misere", "Misère", "Avoid making three in a row", xo(), board.Plane(3, 3, 3))
	g.misere = true
	return g
}

// NewCube is four in a row through a 4x4x4 cube, drawn one layer per panel.
func NewCube() registry.Variant {
	return newLineGame("3d", "3D", "Four in a row in any of 13 directions through a 4x4x4 cube", xo(), board.Cube(4, 4))
}
