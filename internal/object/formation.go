package object

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/physics"
)

// RegenPolicy selects when an empty formation is rebuilt.
type RegenPolicy int

const (
	// RegenImmediate rebuilds on the first update that finds the formation empty.
	RegenImmediate RegenPolicy = iota
	// RegenHoldFrame leaves the formation empty for one update before rebuilding.
	RegenHoldFrame
)

// Casualty describes an enemy removed from the formation.
type Casualty struct {
	Rect   physics.Rect
	Cause  Cause
	Points int
}

type enemySprite struct {
	w, h float64
}

// Formation is a grid of enemies that sweeps sideways, drops a row on each
// wall contact and rebuilds itself once every member is gone.
type Formation struct {
	columns    int
	rows       int
	spacingX   float64
	spacingY   float64
	dropHeight float64
	speed      float64
	points     int
	sprites    []enemySprite
	area       physics.Rect
	policy     RegenPolicy
	rng        *rand.Rand

	enemies    []*Enemy
	armed      bool
	generation int
}

// NewFormation validates the formation settings and builds the first grid.
func NewFormation(s *config.Settings, area physics.Rect, rng *rand.Rand) (*Formation, error) {
	fs := s.Formation
	if fs.Columns <= 0 || fs.Rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", config.ErrInvalidFormation, fs.Columns, fs.Rows)
	}
	if area.Empty() {
		return nil, fmt.Errorf("%w: empty area %dx%d", config.ErrInvalidFormation, area.W, area.H)
	}
	if fs.HeightRatio <= 0 {
		return nil, fmt.Errorf("%w: height ratio %v", config.ErrInvalidFormation, fs.HeightRatio)
	}
	if fs.DropHeight <= 0 {
		return nil, fmt.Errorf("%w: drop height %v", config.ErrInvalidFormation, fs.DropHeight)
	}
	if len(s.Enemy.Sprites) == 0 {
		return nil, fmt.Errorf("%w: no enemy sprites", config.ErrInvalidFormation)
	}

	sprites := make([]enemySprite, len(s.Enemy.Sprites))
	for i, sp := range s.Enemy.Sprites {
		w, h := physics.Scale(sp.W, sp.H, float64(area.H), s.Enemy.Scale)
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: enemy sprite %d scales to %vx%v", config.ErrInvalidFormation, i, w, h)
		}
		sprites[i] = enemySprite{w: w, h: h}
	}

	policy := RegenImmediate
	if fs.HoldEmptyFrame {
		policy = RegenHoldFrame
	}
	if rng == nil {
		rng = s.NewRand()
	}

	f := &Formation{
		columns:    fs.Columns,
		rows:       fs.Rows,
		spacingX:   float64(area.W) / float64(fs.Columns),
		spacingY:   float64(area.H) * fs.HeightRatio / float64(fs.Rows),
		dropHeight: fs.DropHeight,
		speed:      s.Enemy.Speed,
		points:     s.Enemy.Points,
		sprites:    sprites,
		area:       area,
		policy:     policy,
		rng:        rng,
		enemies:    make([]*Enemy, 0, fs.Columns*fs.Rows),
	}
	f.Build()
	return f, nil
}

// Build replaces the members with a full grid at canonical positions, all
// moving right at the base speed.
func (f *Formation) Build() {
	clear(f.enemies)
	f.enemies = f.enemies[:0]
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.columns; col++ {
			x, y := f.Canonical(row, col)
			variant := f.rng.Intn(len(f.sprites))
			sp := f.sprites[variant]
			f.enemies = append(f.enemies, &Enemy{
				X:         x,
				Y:         y,
				W:         sp.w,
				H:         sp.h,
				VX:        f.speed,
				Points:    f.points,
				Variant:   variant,
				Row:       row,
				Col:       col,
				formation: f,
			})
		}
	}
	f.armed = false
	f.generation++
}

// Canonical returns the starting top-left corner of the enemy at (row, col).
func (f *Formation) Canonical(row, col int) (x, y float64) {
	return float64(f.area.X) + float64(col)*f.spacingX, float64(f.area.Y) + float64(row)*f.spacingY
}

// Update rebuilds an empty formation according to the regeneration policy,
// advances every enemy and removes those marked during the pass.
func (f *Formation) Update(ctx UpdateContext) []Casualty {
	if len(f.enemies) == 0 {
		if f.policy == RegenHoldFrame && !f.armed {
			f.armed = true
			return nil
		}
		f.Build()
	}

	for _, e := range f.enemies {
		e.update(ctx, f.dropHeight)
	}
	return f.Sweep()
}

// Sweep removes every enemy marked destroyed and returns what was removed.
func (f *Formation) Sweep() []Casualty {
	var out []Casualty
	kept := f.enemies[:0]
	for _, e := range f.enemies {
		if e.IsDestroyed() {
			out = append(out, Casualty{Rect: e.Rect(), Cause: e.cause, Points: e.Points})
			continue
		}
		kept = append(kept, e)
	}
	clear(f.enemies[len(kept):])
	f.enemies = kept
	return out
}

// Enemies returns the live members. The slice is owned by the formation and
// valid until the next update.
func (f *Formation) Enemies() []*Enemy {
	return f.enemies
}

// Len returns the number of members.
func (f *Formation) Len() int {
	return len(f.enemies)
}

// Empty reports whether every member is gone.
func (f *Formation) Empty() bool {
	return len(f.enemies) == 0
}

// Size returns the grid dimensions.
func (f *Formation) Size() (columns, rows int) {
	return f.columns, f.rows
}

// Generation counts how many grids have been built, the first included.
func (f *Formation) Generation() int {
	return f.generation
}

// Policy returns the regeneration policy.
func (f *Formation) Policy() RegenPolicy {
	return f.policy
}
