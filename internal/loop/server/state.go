package server

import (
	"math/rand"
	"time"

	"github.com/tomz197/knockoffs/internal/collision"
	"github.com/tomz197/knockoffs/internal/config"
	loopcfg "github.com/tomz197/knockoffs/internal/loop/config"
	"github.com/tomz197/knockoffs/internal/object"
	"github.com/tomz197/knockoffs/internal/physics"
	"github.com/tomz197/knockoffs/internal/score"
)

// World holds one session's simulation: the craft, the formation, the
// obstacle field and the particles spawned around them. It is owned by the
// server goroutine and never shared; clients only see snapshots.
type World struct {
	Craft     *object.Craft
	Formation *object.Formation
	Obstacles *object.ObstacleField
	Score     *score.Scoreboard

	area     physics.Rect
	maxDelta time.Duration
	rng      *rand.Rand
	resolver *collision.Resolver

	effects []object.Object // Particles
	toSpawn []object.Object // Objects to add after current update cycle
	events  []ClientEvent

	tick  uint64
	delta time.Duration
}

// NewWorld validates the settings and builds a fresh world. high seeds the
// scoreboard's high score.
func NewWorld(s *config.Settings, high int) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	area := physics.Rect{W: s.Area.Width, H: s.Area.Height}
	rng := s.NewRand()

	formation, err := object.NewFormation(s, area, rng)
	if err != nil {
		return nil, err
	}

	return &World{
		Craft:     object.NewCraft(s, area),
		Formation: formation,
		Obstacles: object.NewObstacleField(s, area, rng),
		Score:     score.NewScoreboard(high),
		area:      area,
		maxDelta:  time.Duration(s.MaxDelta * float64(time.Second)),
		rng:       rng,
		resolver:  collision.NewResolver(s, area),
	}, nil
}

// Area returns the play area.
func (w *World) Area() physics.Rect {
	return w.area
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *World) FlushSpawned() {
	w.effects = append(w.effects, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Fire launches a projectile with a muzzle flash. Reports whether a shot was
// spawned.
func (w *World) Fire() bool {
	if !w.Craft.Fire() {
		return false
	}
	r := w.Craft.Rect()
	object.SpawnMuzzle(float64(r.CenterX()), float64(r.Top()), w.rng, w)
	return true
}

// Step advances the world by one tick in a fixed order: obstacles, the
// formation, the craft, its projectiles, then collision resolution. Delta is
// clamped to [0, max_delta]. The returned events are valid until the next
// call.
func (w *World) Step(delta time.Duration) []ClientEvent {
	w.events = w.events[:0]
	w.delta = min(max(delta, 0), w.maxDelta)
	w.tick++

	ctx := object.UpdateContext{
		Delta:  w.delta,
		Area:   w.area,
		Player: w.Craft.Rect(),
	}

	w.Obstacles.Update(ctx)

	populated := !w.Formation.Empty()
	generation := w.Formation.Generation()
	casualties := w.Formation.Update(ctx)
	if w.Formation.Generation() != generation {
		w.emit(ClientEvent{Type: EventFormationRebuilt, Generation: w.Formation.Generation()})
	}

	var crashed, landed bool
	for _, c := range casualties {
		w.explode(c.Rect, loopcfg.ExplosionParticles)
		switch c.Cause {
		case object.CausePlayer:
			crashed = true
		case object.CauseFloor:
			landed = true
		}
	}

	w.Craft.Update(ctx)
	w.Craft.UpdateProjectiles(ctx)

	res := w.resolver.Resolve(w.Craft, w.Formation, w.Score)
	for _, c := range res.Casualties {
		w.explode(c.Rect, loopcfg.ExplosionParticles)
		if c.Cause == object.CauseShot {
			w.emit(ClientEvent{Type: EventEnemyShot, ScoreAdd: c.Points})
		}
	}

	if populated && w.Formation.Empty() {
		w.emit(ClientEvent{Type: EventFormationCleared, Generation: w.Formation.Generation()})
	}

	if crashed {
		w.explode(w.Craft.Rect(), loopcfg.CraftHitParticles)
		w.emit(ClientEvent{Type: EventCraftHit})
	}
	if landed {
		w.emit(ClientEvent{Type: EventEnemyLanded})
	}
	if crashed || landed {
		w.restartRound()
		w.emit(ClientEvent{Type: EventFormationRebuilt, Generation: w.Formation.Generation()})
	}

	w.updateEffects(ctx)
	return w.events
}

// Reset starts a new game: a fresh formation, a centered craft and a zero
// score. The high score and the obstacle field carry over.
func (w *World) Reset() {
	w.restartRound()
	w.Score.Reset()
	for _, e := range w.effects {
		object.ReleaseObject(e)
	}
	clear(w.effects)
	w.effects = w.effects[:0]
}

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 {
	return w.tick
}

// restartRound rebuilds the formation and re-centers the craft without its
// shots.
func (w *World) restartRound() {
	w.Craft.Reset(w.area)
	w.Formation.Build()
}

func (w *World) explode(r physics.Rect, count int) {
	object.SpawnExplosion(float64(r.CenterX()), float64(r.CenterY()), count,
		loopcfg.ExplosionSpeed, loopcfg.ExplosionLifetime, w.rng, w)
}

func (w *World) emit(ev ClientEvent) {
	w.events = append(w.events, ev)
}

// updateEffects advances particles and releases expired ones to the pool.
func (w *World) updateEffects(ctx object.UpdateContext) {
	kept := w.effects[:0]
	for _, obj := range w.effects {
		if obj.Update(ctx) {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.effects[len(kept):])
	w.effects = kept
	w.FlushSpawned()
}
