package core

import "strconv"

// Color is the foreground color of a screen cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Colors lists every color in declaration order.
var Colors = []Color{
	ColorDefault, ColorRed, ColorGreen, ColorYellow, ColorCyan,
	ColorBrightRed, ColorBrightGreen, ColorBrightYellow, ColorBrightCyan,
	ColorBrightWhite, ColorOrange, ColorGray,
}

// ansiCodes maps colors to ANSI 256-color codes.
var ansiCodes = [...]int{
	ColorDefault:      -1,
	ColorRed:          1,
	ColorGreen:        2,
	ColorYellow:       3,
	ColorCyan:         6,
	ColorBrightRed:    9,
	ColorBrightGreen:  10,
	ColorBrightYellow: 11,
	ColorBrightCyan:   14,
	ColorBrightWhite:  15,
	ColorOrange:       208,
	ColorGray:         245,
}

// ANSI returns the ANSI 256-color code as a string, or "" for ColorDefault
// and unknown colors.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) || ansiCodes[c] < 0 {
		return ""
	}
	return strconv.Itoa(ansiCodes[c])
}
