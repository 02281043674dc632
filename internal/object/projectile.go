package object

import (
	"math"

	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/physics"
)

// Projectile is a shot fired by the craft. It travels straight up at a
// constant speed.
type Projectile struct {
	X, Y      float64 // Top-left corner
	W, H      float64
	Speed     float64 // Pixels per second, upward
	owner     *Craft
	destroyed bool
}

// newProjectile creates a shot whose top edge sits on the owner's top center.
func newProjectile(owner *Craft, s config.Projectile) *Projectile {
	r := owner.Rect()
	return &Projectile{
		X:     float64(r.CenterX()) - s.Width/2,
		Y:     float64(r.Top()),
		W:     s.Width,
		H:     s.Height,
		Speed: s.Speed,
		owner: owner,
	}
}

// Rect returns the projectile's box.
func (p *Projectile) Rect() physics.Rect {
	return physics.Rect{
		X: physics.Snap(p.X),
		Y: physics.Snap(p.Y),
		W: int(math.Round(p.W)),
		H: int(math.Round(p.H)),
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile up. While it still overlaps the craft
// vertically it follows the craft's center. Returns true once it is fully
// above the area.
func (p *Projectile) Update(ctx UpdateContext) bool {
	p.Y -= p.Speed * ctx.Seconds()

	if p.owner != nil {
		if r := p.owner.Rect(); p.Rect().Bottom() >= r.Top() {
			p.X = float64(r.CenterX()) - p.W/2
		}
	}

	return p.Rect().Bottom() < ctx.Area.Top()
}
