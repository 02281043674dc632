// Package object holds the simulated entities: the player's craft and its
// projectiles, the enemy formation, the drifting obstacle field and the
// particles used for explosions.
package object

import (
	"time"

	"github.com/tomz197/knockoffs/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Area   physics.Rect // Play area
	Player physics.Rect // Craft box as committed by the previous step
}

// Seconds returns the tick length in seconds.
func (ctx UpdateContext) Seconds() float64 {
	return ctx.Delta.Seconds()
}

// Object is an entity advanced once per tick that reports when it is done.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Direction is a horizontal movement intent.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
