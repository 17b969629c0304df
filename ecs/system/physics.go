package system

import (
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// PhysicsSystem steps the Chipmunk space by the tick delta and copies body
// positions back into transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w.Delta().Seconds())

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Static || body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})
}
