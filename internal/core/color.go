package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board glyphs and HUD text.
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

// NumberColors is the classic palette for neighbour counts 0-8.
var NumberColors = [9]Color{
	ColorGray,
	ColorBrightBlue,
	ColorGreen,
	ColorBrightRed,
	ColorBlue,
	ColorRed,
	ColorCyan,
	ColorBrightWhite,
	ColorGray,
}
