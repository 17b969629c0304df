package ecs

import (
	"time"

	"github.com/milk9111/zombietown/ecs/component"
)

// World owns entities, components, signals, the timeline and the physics
// space. It is not safe for concurrent use; the simulation is single
// threaded and every pass runs on the caller's goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet

	signals  Signals
	timeline Timeline

	now   time.Duration
	delta time.Duration

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Advance moves the logical clock forward by dt.
func (w *World) Advance(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.now += dt
}

// Now is the logical time since the world was created.
func (w *World) Now() time.Duration {
	if w == nil {
		return 0
	}
	return w.now
}

// Delta is the elapsed time of the current tick.
func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

// Signals returns the synchronous signal bus.
func (w *World) Signals() *Signals {
	if w == nil {
		return nil
	}
	return &w.signals
}

// Timeline returns the scheduled-event queue.
func (w *World) Timeline() *Timeline {
	if w == nil {
		return nil
	}
	return &w.timeline
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// DrainTimeline pops every event due by Now, dropping the ones whose entity
// has been removed in the meantime.
func (w *World) DrainTimeline() []TimelineEvent {
	if w == nil {
		return nil
	}
	due := w.timeline.Due(w.now)
	out := due[:0]
	for _, evt := range due {
		if w.entities.isAlive(evt.Entity) {
			out = append(out, evt)
		}
	}
	return out
}
