package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	shown          []cell  // What the terminal currently displays, per cell
	dirty          []bool  // Cells overwritten by text since the last render

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// cell is the pair of sub-pixels shown in one terminal cell.
type cell struct {
	top, bottom Color
}

// unknownCell never matches a drawn cell, forcing a rewrite.
var unknownCell = cell{top: colorUnknown, bottom: colorUnknown}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the simulation.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.allocate(termWidth, termHeight)
	return c
}

func (c *Canvas) allocate(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.shown = make([]cell, termWidth*termHeight)
	c.dirty = make([]bool, termWidth*termHeight)
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	c.ForceRedraw()
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.allocate(termWidth, termHeight)
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas. The terminal keeps its content
// until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = unknownCell
	}
}

// MarkTextDirty records that text was written over width cells starting at
// the 1-based canvas position (col, row). The next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.dirty[y*c.termWidth+x] = true
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the color at actual terminal sub-pixel coordinates.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, color Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), color)
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// Every rectangle covers at least one pixel so small entities stay visible.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Ceil((y+h)*c.scaleY)), y0+1)

	x0, x1 = max(x0, 0), min(x1, c.termWidth)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px < x1; px++ {
			row[px] = color
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, color Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, color)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], color)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, color Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		slices.Sort(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, color)
			}
		}
	}
}

// Render writes every cell whose content changed since the last Render, or
// that text overwrote, to w.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			next := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if next == c.shown[idx] && !c.dirty[idx] {
				continue
			}
			c.shown[idx] = next
			c.dirty[idx] = false

			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.writeCell(next)
		}
	}

	if c.renderBuf.Len() > 0 {
		io.WriteString(w, c.renderBuf.String())
	}
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeCell emits one half-block cell. Two different colors use the
// foreground for the top half and the background for the bottom half.
func (c *Canvas) writeCell(v cell) {
	switch {
	case v.top == ColorNone && v.bottom == ColorNone:
		c.renderBuf.WriteByte(' ')
		return
	case v.top == v.bottom:
		c.renderBuf.WriteString(v.top.fg())
		c.renderBuf.WriteRune(BlockFull)
	case v.bottom == ColorNone:
		c.renderBuf.WriteString(v.top.fg())
		c.renderBuf.WriteRune(BlockUpperHalf)
	case v.top == ColorNone:
		c.renderBuf.WriteString(v.bottom.fg())
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.renderBuf.WriteString(v.top.fg())
		c.renderBuf.WriteString(v.bottom.bg())
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
	c.renderBuf.WriteString(ColorReset)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + line + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + line)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Thread-safe as long as each goroutine uses its own Canvas instance.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
