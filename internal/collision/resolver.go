// Package collision pairs projectiles with formation members and credits
// the score for every enemy shot down.
package collision

//go:generate go tool mockgen -destination=./mocks/score_sink_mock.go -package=mocks . ScoreSink

import (
	"math"

	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/object"
	"github.com/tomz197/knockoffs/internal/physics"
)

// ScoreSink receives points for destroyed enemies.
type ScoreSink interface {
	AddScore(points int)
}

// Result summarizes one resolution pass.
type Result struct {
	Hits       int               // Enemies destroyed by shots
	Points     int               // Points credited
	Consumed   int               // Projectiles removed because they hit
	Casualties []object.Casualty // Everything swept from the formation
}

// Resolver runs the projectile/enemy pass. It keeps a spatial grid between
// passes so the broad phase does not allocate.
type Resolver struct {
	persist bool
	grid    *physics.SpatialGrid
	live    []*object.Enemy
}

// NewResolver creates a resolver for the given area. Grid cells are sized
// to the formation spacing so an enemy spans at most a few cells.
func NewResolver(s *config.Settings, area physics.Rect) *Resolver {
	cell := float64(area.W) / float64(max(s.Formation.Columns, 1))
	if h := float64(area.H) * s.Formation.HeightRatio / float64(max(s.Formation.Rows, 1)); h > 0 {
		cell = math.Min(cell, h)
	}
	return &Resolver{
		persist: s.Projectile.Persist,
		grid:    physics.NewSpatialGrid(area, cell),
	}
}

// Resolve tests every live projectile against every enemy alive at the start
// of the pass. Each destroyed enemy is credited to sink exactly once, even
// when several shots overlap it. Shots that hit are consumed unless
// projectiles persist. Removal happens after all pairs are evaluated.
func (r *Resolver) Resolve(craft *object.Craft, formation *object.Formation, sink ScoreSink) Result {
	var res Result

	r.grid.Clear()
	r.live = r.live[:0]
	for _, e := range formation.Enemies() {
		if e.IsDestroyed() {
			continue
		}
		r.grid.Insert(e.Rect(), len(r.live))
		r.live = append(r.live, e)
	}

	if len(r.live) > 0 {
		for _, p := range craft.Projectiles() {
			if p.IsDestroyed() {
				continue
			}
			if r.hit(p, sink, &res) && !r.persist {
				p.MarkDestroyed()
			}
		}
	}

	res.Consumed = craft.RemoveDestroyedProjectiles()
	res.Casualties = formation.Sweep()

	clear(r.live)
	r.live = r.live[:0]
	return res
}

// hit marks every enemy the projectile overlaps and reports whether there
// was at least one overlap.
func (r *Resolver) hit(p *object.Projectile, sink ScoreSink, res *Result) bool {
	box := p.Rect()
	overlapped := false
	r.grid.QueryRect(box, func(i int) bool {
		e := r.live[i]
		if !box.Intersects(e.Rect()) {
			return false
		}
		overlapped = true
		if e.Destroy(object.CauseShot) {
			res.Hits++
			res.Points += e.Points
			if sink != nil {
				sink.AddScore(e.Points)
			}
		}
		return false
	})
	return overlapped
}
