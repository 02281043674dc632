package object

import (
	"math"

	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/physics"
)

// Craft is the player-controlled ship. It slides along the bottom edge of
// the play area and owns a bounded set of projectiles.
type Craft struct {
	X, Y  float64 // Top-left corner
	W, H  float64 // Scaled sprite size
	Speed float64 // Pixels per second

	MovingLeft  bool
	MovingRight bool

	shot        config.Projectile
	projectiles []*Projectile
}

// NewCraft creates a craft sized relative to the area height and parked at
// the bottom center of the area.
func NewCraft(s *config.Settings, area physics.Rect) *Craft {
	w, h := physics.Scale(s.Craft.Sprite.W, s.Craft.Sprite.H, float64(area.H), s.Craft.Scale)
	c := &Craft{
		W:           w,
		H:           h,
		Speed:       s.Craft.Speed,
		shot:        s.Projectile,
		projectiles: make([]*Projectile, 0, max(s.Projectile.Max, 0)),
	}
	c.Center(area)
	return c
}

// Center parks the craft at the bottom center of the area.
func (c *Craft) Center(area physics.Rect) {
	c.X = float64(area.CenterX()) - c.W/2
	c.Y = float64(area.Bottom()) - c.H
}

// Reset re-centers the craft, clears movement intents and drops all shots.
func (c *Craft) Reset(area physics.Rect) {
	c.Center(area)
	c.MovingLeft = false
	c.MovingRight = false
	clear(c.projectiles)
	c.projectiles = c.projectiles[:0]
}

// Rect returns the craft's box.
func (c *Craft) Rect() physics.Rect {
	return physics.Rect{
		X: physics.Snap(c.X),
		Y: physics.Snap(c.Y),
		W: int(math.Round(c.W)),
		H: int(math.Round(c.H)),
	}
}

// SetMoving records a movement intent. Motion happens on the next Update.
func (c *Craft) SetMoving(dir Direction, active bool) {
	switch dir {
	case DirLeft:
		c.MovingLeft = active
	case DirRight:
		c.MovingRight = active
	}
}

// Update moves the craft by its intent. Right wins when both are held and
// there is room on the right. The step never carries the craft past a wall.
func (c *Craft) Update(ctx UpdateContext) {
	step := c.Speed * ctx.Seconds()
	if step <= 0 {
		return
	}

	left := float64(ctx.Area.Left())
	right := float64(ctx.Area.Right())

	switch {
	case c.MovingRight && c.X+c.W < right:
		if room := right - (c.X + c.W); step >= room {
			c.X = right - c.W
		} else {
			c.X += step
		}
	case c.MovingLeft && c.X > left:
		if room := c.X - left; step >= room {
			c.X = left
		} else {
			c.X -= step
		}
	}
}

// Fire spawns a projectile at the craft's top center if fewer than the
// configured maximum are live. Reports whether a shot was spawned.
func (c *Craft) Fire() bool {
	if c.Live() >= c.shot.Max {
		return false
	}
	c.projectiles = append(c.projectiles, newProjectile(c, c.shot))
	return true
}

// Live returns the number of projectiles not marked destroyed.
func (c *Craft) Live() int {
	n := 0
	for _, p := range c.projectiles {
		if !p.IsDestroyed() {
			n++
		}
	}
	return n
}

// Projectiles returns the craft's shots. The slice is owned by the craft and
// valid until the next update.
func (c *Craft) Projectiles() []*Projectile {
	return c.projectiles
}

// UpdateProjectiles advances every shot and drops those that left the area
// or were destroyed.
func (c *Craft) UpdateProjectiles(ctx UpdateContext) {
	kept := c.projectiles[:0]
	for _, p := range c.projectiles {
		if p.IsDestroyed() || p.Update(ctx) {
			continue
		}
		kept = append(kept, p)
	}
	clear(c.projectiles[len(kept):])
	c.projectiles = kept
}

// RemoveDestroyedProjectiles drops shots consumed by a hit and returns how
// many were removed.
func (c *Craft) RemoveDestroyedProjectiles() int {
	kept := c.projectiles[:0]
	for _, p := range c.projectiles {
		if !p.IsDestroyed() {
			kept = append(kept, p)
		}
	}
	removed := len(c.projectiles) - len(kept)
	clear(c.projectiles[len(kept):])
	c.projectiles = kept
	return removed
}
