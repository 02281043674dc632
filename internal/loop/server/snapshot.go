package server

import (
	"time"

	"github.com/tomz197/knockoffs/internal/object"
	"github.com/tomz197/knockoffs/internal/physics"
)

// EnemyView is an enemy as seen by the renderer.
type EnemyView struct {
	Rect    physics.Rect
	Variant int
}

// ObstacleView is an obstacle as seen by the renderer.
type ObstacleView struct {
	X, Y    float64 // Center
	W, H    float64 // Unrotated size
	Angle   float64 // Degrees
	Variant int
}

// ParticleView is a visible particle.
type ParticleView struct {
	X, Y float64
}

// WorldSnapshot is an immutable copy of the world for rendering. It holds
// values only, so readers never race the server goroutine.
type WorldSnapshot struct {
	Tick        uint64
	Delta       time.Duration
	Area        physics.Rect
	Craft       physics.Rect
	Projectiles []physics.Rect
	Enemies     []EnemyView
	Obstacles   []ObstacleView
	Particles   []ParticleView
	Score       int
	High        int
	Generation  int
}

// Snapshot copies the world's renderable state.
func (w *World) Snapshot() *WorldSnapshot {
	shots := w.Craft.Projectiles()
	enemies := w.Formation.Enemies()
	obstacles := w.Obstacles.Obstacles()

	snap := &WorldSnapshot{
		Tick:        w.tick,
		Delta:       w.delta,
		Area:        w.area,
		Craft:       w.Craft.Rect(),
		Projectiles: make([]physics.Rect, 0, len(shots)),
		Enemies:     make([]EnemyView, 0, len(enemies)),
		Obstacles:   make([]ObstacleView, 0, len(obstacles)),
		Particles:   make([]ParticleView, 0, len(w.effects)),
		Score:       w.Score.Score(),
		High:        w.Score.High(),
		Generation:  w.Formation.Generation(),
	}

	for _, p := range shots {
		if !p.IsDestroyed() {
			snap.Projectiles = append(snap.Projectiles, p.Rect())
		}
	}
	for _, e := range enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{Rect: e.Rect(), Variant: e.Variant})
	}
	for _, o := range obstacles {
		ow, oh := o.Size()
		snap.Obstacles = append(snap.Obstacles, ObstacleView{
			X: o.X, Y: o.Y, W: ow, H: oh,
			Angle:   o.Angle,
			Variant: o.Variant,
		})
	}
	for _, obj := range w.effects {
		if p, ok := obj.(*object.Particle); ok && p.Visible() {
			snap.Particles = append(snap.Particles, ParticleView{X: p.X, Y: p.Y})
		}
	}

	return snap
}
