package object

import (
	"math"

	"github.com/tomz197/knockoffs/internal/physics"
)

// Anchor is a spawn point just outside the play area.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorTop
	AnchorLeft
	AnchorRight
	anchorCount
)

func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopRight:
		return "top-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomRight:
		return "bottom-right"
	case AnchorTop:
		return "top"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	default:
		return "unknown"
	}
}

// Obstacle is a drifting, spinning rock. It never collides with anything;
// the field recycles it once it has drifted out of the area.
type Obstacle struct {
	X, Y          float64 // Center
	VX, VY        float64 // Pixels per second
	Angle         float64 // Degrees, kept within (-360, 360)
	RotationSpeed float64 // Degrees per second
	ScaleMul      float64 // Multiplier on the base size
	Variant       int     // Sprite variant
	Anchor        Anchor  // Where the last recycle placed it

	baseW, baseH float64 // Variant size at multiplier 1
}

// Size returns the scaled, unrotated size.
func (o *Obstacle) Size() (w, h float64) {
	return o.baseW * o.ScaleMul, o.baseH * o.ScaleMul
}

// Rect returns the unrotated box around the center.
func (o *Obstacle) Rect() physics.Rect {
	w, h := o.Size()
	return physics.RectAround(o.X, o.Y, w, h)
}

// exited reports whether the obstacle lies fully outside the area on some
// axis and is still moving away from it on that axis.
func (o *Obstacle) exited(area physics.Rect) bool {
	r := o.Rect()
	switch {
	case r.Right() < area.Left() && o.VX < 0:
		return true
	case r.Left() > area.Right() && o.VX > 0:
		return true
	case r.Bottom() < area.Top() && o.VY < 0:
		return true
	case r.Top() > area.Bottom() && o.VY > 0:
		return true
	}
	return false
}

// spin advances the rotation, wrapping it to (-360, 360).
func (o *Obstacle) spin(dt float64) {
	o.Angle = math.Mod(o.Angle+o.RotationSpeed*dt, 360)
}

func (o *Obstacle) move(dt float64) {
	o.X += o.VX * dt
	o.Y += o.VY * dt
}
