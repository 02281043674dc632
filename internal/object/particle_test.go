package object

import (
	"testing"
)

type collector struct {
	objects []Object
}

func (c *collector) Spawn(obj Object) {
	c.objects = append(c.objects, obj)
}

func TestSpawnExplosion(t *testing.T) {
	var c collector
	SpawnExplosion(10, 20, 12, 50, 0.5, testRand(), &c)

	if len(c.objects) != 12 {
		t.Fatalf("spawned = %d, want 12", len(c.objects))
	}
	for _, obj := range c.objects {
		p, ok := obj.(*Particle)
		if !ok {
			t.Fatalf("spawned %T, want *Particle", obj)
		}
		if p.X != 10 || p.Y != 20 {
			t.Errorf("origin = (%v, %v), want (10, 20)", p.X, p.Y)
		}
		if p.Lifetime < 0.25 || p.Lifetime > 0.5 {
			t.Errorf("lifetime = %v, want within [0.25, 0.5]", p.Lifetime)
		}
		ReleaseObject(p)
	}
}

func TestSpawnWithoutSpawner(t *testing.T) {
	SpawnExplosion(0, 0, 5, 10, 1, testRand(), nil)
	SpawnMuzzle(0, 0, testRand(), nil)
}

func TestSpawnMuzzleGoesUp(t *testing.T) {
	var c collector
	SpawnMuzzle(0, 0, testRand(), &c)

	if len(c.objects) == 0 || len(c.objects) > 2 {
		t.Fatalf("spawned = %d, want 1 or 2", len(c.objects))
	}
	for _, obj := range c.objects {
		if p := obj.(*Particle); p.VY >= 0 {
			t.Errorf("vy = %v, want upward", p.VY)
		}
	}
}

func TestParticleLifetime(t *testing.T) {
	p := NewParticle(0, 0, 10, 0, 0.3)
	defer p.Release()

	if p.Update(tick(0.1)) {
		t.Fatal("Update() = true before lifetime ended")
	}
	if p.X <= 0 {
		t.Errorf("x = %v, want moved right", p.X)
	}
	if !p.Visible() {
		t.Error("Visible() = false early in life")
	}

	p.Update(tick(0.15))
	if p.Visible() {
		t.Errorf("Visible() = true with %v of %v left", p.Lifetime, p.MaxLifetime)
	}
	if !p.Update(tick(0.1)) {
		t.Error("Update() = false after lifetime ended")
	}
}
