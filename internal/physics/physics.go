// Package physics provides axis-aligned box geometry, sprite scaling and a
// broad-phase grid for the shooter simulation.
package physics

import "math"

// Rect is an integer-snapped axis-aligned bounding box.
// X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Snap converts a float coordinate to the integer grid used by boxes.
// Flooring keeps negative off-screen positions monotonic.
func Snap(v float64) int {
	return int(math.Floor(v))
}

// RectAround returns the box of size w×h centered on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{
		X: Snap(cx - w/2),
		Y: Snap(cy - h/2),
		W: int(math.Round(w)),
		H: int(math.Round(h)),
	}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether two boxes overlap. Touching edges do not count
// and empty boxes never overlap anything.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Scale sizes an asset of assetW×assetH so that its height is ratio×refHeight,
// preserving the asset's aspect ratio.
func Scale(assetW, assetH, refHeight, ratio float64) (w, h float64) {
	if assetH <= 0 {
		return 0, 0
	}
	h = ratio * refHeight
	w = assetW / assetH * h
	return w, h
}

// Sign returns -1, 0 or 1 matching the sign of v.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
