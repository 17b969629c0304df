package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
)

const tick = 16 * time.Millisecond

func newTestWorld(t *testing.T) (*ecs.World, *prefabs.Tuning) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w, prefabs.DefaultTuning()
}

func step(w *ecs.World, systems ...ecs.System) {
	w.Advance(tick)
	for _, s := range systems {
		s.Update(w)
	}
}

func healthOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Health {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no health", e)
	}
	return h
}

func velocityOf(w *ecs.World, e ecs.Entity) cp.Vector {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return cp.Vector{}
	}
	return body.Body.Velocity()
}

func pin(w *ecs.World, e ecs.Entity, at cp.Vector) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return
	}
	body.Body.SetPosition(at)
	body.Body.SetVelocityVector(cp.Vector{})
}
