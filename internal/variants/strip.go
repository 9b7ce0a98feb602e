package variants

import (
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

func init() {
	registry.Register("onedimensional", func(s config.Variants) registry.Variant { return NewOneDimensional(s.OneDimensional) })
}

// OneDimensional is a single row of cells with a selectable length and run.
type OneDimensional struct {
	*lineGame
	presets []config.StripPreset
	preset  int
}

// NewOneDimensional creates a strip game at the default preset.
func NewOneDimensional(s config.OneDimensionalSettings) *OneDimensional {
	presets := s.Presets
	if len(presets) == 0 {
		presets = config.DefaultVariants().OneDimensional.Presets
	}
	idx := core.Clamp(s.Default, 0, len(presets)-1)
	p := presets[idx]
	v := &OneDimensional{
		lineGame: newLineGame("onedimensional", "One-Dimensional", "Get a run in a single row", xo(), board.Line(p.Length, p.WinLength)),
		presets:  presets,
		preset:   idx,
	}
	return v
}

// Preset returns the active strip length and run.
func (v *OneDimensional) Preset() config.StripPreset { return v.presets[v.preset] }

// SelectPreset switches to preset i. It is refused once a game is underway.
func (v *OneDimensional) SelectPreset(i int) error {
	if v.sess.Phase() != session.Setup {
		return rules.ErrConfigurationLocked
	}
	v.preset = core.Wrap(i, len(v.presets))
	p := v.presets[v.preset]
	v.geom = board.Line(p.Length, p.WinLength)
	v.Reset(v.cfg)
	return nil
}

func (v *OneDimensional) Commands() []registry.Command {
	return []registry.Command{
		{Key: "p", Help: "next board size"},
		{Key: "P", Help: "previous board size"},
	}
}

func (v *OneDimensional) Perform(key string) error {
	switch key {
	case "p":
		return v.SelectPreset(v.preset + 1)
	case "P":
		return v.SelectPreset(v.preset - 1)
	}
	return v.lineGame.Perform(key)
}

func (v *OneDimensional) Status() []string {
	p := v.Preset()
	return v.status(fmt.Sprintf("1×%d, %d in a row wins", p.Length, p.WinLength))
}
