package object

import (
	"math"
	"math/rand"
	"sync"
)

const (
	explosionDrag = 0.95
	muzzleDrag    = 0.85
	fadeCutoff    = 0.25 // Fraction of life left when a fading particle vanishes
)

var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a pooled, short-lived debris pixel. It never collides and
// never affects scoring.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Drag        float64 // Velocity kept per 1/60 s; 1 means no drag
	Fade        bool
}

// NewParticle takes a particle from the pool. Release it when it leaves
// the world.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X: x, Y: y,
		VX: vx, VY: vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        explosionDrag,
		Fade:        true,
	}
	return p
}

func (p *Particle) Release() {
	particlePool.Put(p)
}

// Visible reports whether the particle is still drawn.
func (p *Particle) Visible() bool {
	if !p.Fade || p.MaxLifetime <= 0 {
		return true
	}
	return p.Lifetime/p.MaxLifetime >= fadeCutoff
}

// Update advances the particle and reports whether it expired.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.Seconds()
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	keep := math.Pow(p.Drag, dt*60)
	p.VX *= keep
	p.VY *= keep
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// burst describes a spray of particles from one point. Speeds and
// lifetimes are drawn uniformly from [min, max].
type burst struct {
	count              int
	heading, spread    float64 // Radians; spread is the full cone width
	minSpeed, maxSpeed float64
	minLife, maxLife   float64
	drag               float64
}

func (b burst) emit(x, y float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil || rng == nil {
		return
	}
	for range b.count {
		angle := b.heading + (rng.Float64()-0.5)*b.spread
		speed := b.minSpeed + rng.Float64()*(b.maxSpeed-b.minSpeed)
		life := b.minLife + rng.Float64()*(b.maxLife-b.minLife)

		p := NewParticle(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, life)
		p.Drag = b.drag
		spawner.Spawn(p)
	}
}

// SpawnExplosion sprays count particles in every direction around (x, y).
// Each gets between half and one and a half times speed and between half
// and all of lifetime.
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, rng *rand.Rand, spawner Spawner) {
	burst{
		count:    count,
		spread:   2 * math.Pi,
		minSpeed: speed * 0.5, maxSpeed: speed * 1.5,
		minLife: lifetime * 0.5, maxLife: lifetime,
		drag: explosionDrag,
	}.emit(x, y, rng, spawner)
}

// SpawnMuzzle puts a one or two particle flash above a freshly fired shot.
func SpawnMuzzle(x, y float64, rng *rand.Rand, spawner Spawner) {
	if rng == nil {
		return
	}
	burst{
		count:    1 + rng.Intn(2),
		heading:  -math.Pi / 2,
		spread:   0.8,
		minSpeed: 60, maxSpeed: 100,
		minLife: 0.1, maxLife: 0.25,
		drag: muzzleDrag,
	}.emit(x, y, rng, spawner)
}
