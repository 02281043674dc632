package object

import (
	"math/rand"

	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/physics"
)

type obstacleSprite struct {
	w, h float64
}

// ObstacleField keeps a fixed number of obstacles drifting across the area.
// Obstacles that leave are recycled to a random anchor instead of being freed.
type ObstacleField struct {
	obstacles []*Obstacle
	sprites   []obstacleSprite
	speed     float64
	spin      float64
	scaleMin  float64
	scaleMax  float64
	lead      float64
	area      physics.Rect
	rng       *rand.Rand
	recycled  int
}

// NewObstacleField creates the configured number of obstacles and places
// each one at a random anchor.
func NewObstacleField(s *config.Settings, area physics.Rect, rng *rand.Rand) *ObstacleField {
	o := s.Obstacles
	if rng == nil {
		rng = s.NewRand()
	}

	sprites := make([]obstacleSprite, len(o.Sprites))
	for i, sp := range o.Sprites {
		w, h := physics.Scale(sp.W, sp.H, float64(area.H), o.Scale)
		sprites[i] = obstacleSprite{w: w, h: h}
	}

	f := &ObstacleField{
		sprites:  sprites,
		speed:    o.Speed,
		spin:     o.RotationSpeed,
		scaleMin: o.ScaleMin,
		scaleMax: o.ScaleMax,
		lead:     o.AnchorLead,
		area:     area,
		rng:      rng,
	}
	if len(sprites) == 0 {
		return f
	}

	f.obstacles = make([]*Obstacle, o.Count)
	for i := range f.obstacles {
		f.obstacles[i] = &Obstacle{}
		f.Recycle(f.obstacles[i])
	}
	return f
}

// Update recycles obstacles that drifted out, then spins and moves each one.
func (f *ObstacleField) Update(ctx UpdateContext) {
	dt := ctx.Seconds()
	for _, o := range f.obstacles {
		if o.exited(ctx.Area) {
			f.Recycle(o)
		}
		o.spin(dt)
		o.move(dt)
	}
}

// Obstacles returns the pool. The slice is owned by the field.
func (f *ObstacleField) Obstacles() []*Obstacle {
	return f.obstacles
}

// Recycled counts recycles, the initial placements included.
func (f *ObstacleField) Recycled() int {
	return f.recycled
}

// Recycle rerolls the obstacle's speed, spin, size and variant and places it
// at a random anchor outside the area, heading inward.
func (f *ObstacleField) Recycle(o *Obstacle) {
	f.recycled++

	speed := f.speed * f.uniform(0.5, 2)
	o.Angle = 0
	o.RotationSpeed = f.spin * f.uniform(0.5, 2) * f.randomSign()
	o.ScaleMul = f.uniform(f.scaleMin, f.scaleMax)
	o.Variant = f.rng.Intn(len(f.sprites))
	o.baseW, o.baseH = f.sprites[o.Variant].w, f.sprites[o.Variant].h

	f.place(o, Anchor(f.rng.Intn(int(anchorCount))), speed)
}

// place moves the obstacle to the anchor, pushed out by the lead distance
// plus its half extent, and points its velocity at the area center. On an
// edge midpoint the axis along the edge gets a random sign.
func (f *ObstacleField) place(o *Obstacle, a Anchor, speed float64) {
	w, h := o.Size()
	offset := speed * f.lead
	left := float64(f.area.Left()) - w/2 - offset
	right := float64(f.area.Right()) + w/2 + offset
	top := float64(f.area.Top()) - h/2 - offset
	bottom := float64(f.area.Bottom()) + h/2 + offset
	midX := float64(f.area.X) + float64(f.area.W)/2
	midY := float64(f.area.Y) + float64(f.area.H)/2

	switch a {
	case AnchorTopLeft:
		o.X, o.Y = left, top
	case AnchorTopRight:
		o.X, o.Y = right, top
	case AnchorBottomLeft:
		o.X, o.Y = left, bottom
	case AnchorBottomRight:
		o.X, o.Y = right, bottom
	case AnchorTop:
		o.X, o.Y = midX, top
	case AnchorLeft:
		o.X, o.Y = left, midY
	case AnchorRight:
		o.X, o.Y = right, midY
	}

	sx := physics.Sign(midX - o.X)
	if sx == 0 {
		sx = f.randomSign()
	}
	sy := physics.Sign(midY - o.Y)
	if sy == 0 {
		sy = f.randomSign()
	}
	o.VX = sx * speed
	o.VY = sy * speed
	o.Anchor = a
}

func (f *ObstacleField) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

func (f *ObstacleField) randomSign() float64 {
	if f.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
