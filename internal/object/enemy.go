package object

import (
	"math"

	"github.com/tomz197/knockoffs/internal/physics"
)

// Cause records why an enemy left the formation.
type Cause int

const (
	CauseNone   Cause = iota
	CauseShot         // Hit by a projectile
	CausePlayer       // Rammed the craft
	CauseFloor        // Reached the bottom of the area
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseShot:
		return "shot"
	case CausePlayer:
		return "player"
	case CauseFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Enemy is one member of a Formation.
type Enemy struct {
	X, Y    float64 // Top-left corner
	W, H    float64
	VX      float64 // Horizontal velocity, pixels per second
	Points  int
	Variant int // Sprite variant
	Row     int
	Col     int

	formation *Formation
	cause     Cause
}

// Rect returns the enemy's box.
func (e *Enemy) Rect() physics.Rect {
	return physics.Rect{
		X: physics.Snap(e.X),
		Y: physics.Snap(e.Y),
		W: int(math.Round(e.W)),
		H: int(math.Round(e.H)),
	}
}

// Formation returns the formation the enemy belongs to.
func (e *Enemy) Formation() *Formation {
	return e.formation
}

// MarkDestroyed marks the enemy as shot (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.Destroy(CauseShot)
}

// Destroy marks the enemy for removal. The first cause sticks; later calls
// are no-ops. Reports whether this call destroyed the enemy.
func (e *Enemy) Destroy(cause Cause) bool {
	if e.cause != CauseNone || cause == CauseNone {
		return false
	}
	e.cause = cause
	return true
}

// IsDestroyed returns true if the enemy is marked for removal (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.cause != CauseNone
}

// Cause returns why the enemy was destroyed, or CauseNone.
func (e *Enemy) Cause() Cause {
	return e.cause
}

// update runs one step of the per-enemy pass. Marking does not stop the
// step; the formation removes marked enemies afterwards.
func (e *Enemy) update(ctx UpdateContext, dropHeight float64) {
	e.X += e.VX * ctx.Seconds()

	r := e.Rect()
	if r.Intersects(ctx.Player) {
		e.Destroy(CausePlayer)
	}
	if r.Bottom() > ctx.Area.Bottom() {
		e.Destroy(CauseFloor)
	}

	left := float64(ctx.Area.Left())
	right := float64(ctx.Area.Right())

	switch {
	case e.VX < 0 && e.X <= left:
		e.X = left
		e.VX = -e.VX
		e.Y += dropHeight
	case e.VX > 0 && e.X+e.W >= right:
		e.X = right - e.W
		e.VX = -e.VX
		e.Y += dropHeight
	}
}
