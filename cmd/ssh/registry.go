package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// notifier is the part of a session server the registry needs.
type notifier interface {
	Shutdown()
}

// registry tracks live sessions so they can be told about a shutdown.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]notifier
}

func newRegistry() *registry {
	return &registry{sessions: make(map[uuid.UUID]notifier)}
}

// add registers a session under id.
func (r *registry) add(id uuid.UUID, n notifier) {
	r.mu.Lock()
	r.sessions[id] = n
	r.mu.Unlock()
}

func (r *registry) remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// shutdown notifies every session and waits for them to disconnect, or for
// the timeout. Reports how many were still connected.
func (r *registry) shutdown(timeout time.Duration) int {
	r.mu.Lock()
	for _, n := range r.sessions {
		n.Shutdown()
	}
	r.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := r.count(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return r.count()
		case <-ticker.C:
		}
	}
}
