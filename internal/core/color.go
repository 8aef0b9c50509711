package core

// Color is a foreground colour for a screen cell. The renderer maps each value
// to a terminal colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorGray
	ColorBrightGreen
	ColorBrightRed
	ColorBrightWhite
)
