// Package draw renders to ANSI terminals: a scaled half-block pixel canvas
// and a chunked text writer suited to SSH sessions.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI text attributes for overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
	ColorYellowText = "\033[93m"
)

// Color is a canvas pixel color. ColorNone leaves the pixel empty.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGreen
	ColorCyan
	ColorYellow
	ColorRed
	ColorMagenta
	ColorGray

	colorUnknown Color = 255
)

var colorCodes = [...]int{
	ColorWhite:   97,
	ColorGreen:   92,
	ColorCyan:    96,
	ColorYellow:  93,
	ColorRed:     91,
	ColorMagenta: 95,
	ColorGray:    90,
}

var fgSeq, bgSeq [len(colorCodes)]string

func init() {
	for i, code := range colorCodes {
		if code == 0 {
			continue
		}
		fgSeq[i] = "\033[" + strconv.Itoa(code) + "m"
		bgSeq[i] = "\033[" + strconv.Itoa(code+10) + "m"
	}
}

func (c Color) fg() string {
	if int(c) < len(fgSeq) {
		return fgSeq[c]
	}
	return ""
}

func (c Color) bg() string {
	if int(c) < len(bgSeq) {
		return bgSeq[c]
	}
	return ""
}

// cursorTo returns the ANSI sequence moving the cursor to a 1-based position.
func cursorTo(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
