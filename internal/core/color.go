package core

// Color is a foreground color for a screen cell. The tui package maps each
// value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PlayerColors is the palette assigned to players in turn-order position.
var PlayerColors = []Color{ColorBrightCyan, ColorBrightMagenta, ColorBrightYellow}

// PlayerColor returns the palette color for a zero-based player index.
func PlayerColor(i int) Color {
	if i < 0 {
		return ColorDefault
	}
	return PlayerColors[i%len(PlayerColors)]
}
