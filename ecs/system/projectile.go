package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// ProjectileSystem sweeps each projectile along its path for this tick and
// resolves the first thing it strikes.
type ProjectileSystem struct {
	damage *Damage
}

func NewProjectileSystem(damage *Damage) *ProjectileSystem {
	return &ProjectileSystem{damage: damage}
}

func friendly(owner, other component.Faction) bool {
	if owner == other {
		return true
	}
	if owner == component.FactionPlayer || owner == component.FactionAlly {
		return other == component.FactionPlayer || other == component.FactionAlly
	}
	return false
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	dt := w.Delta().Seconds()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if w.Now() >= p.Expires {
			ecs.DestroyEntity(w, e)
			return
		}

		from := cp.Vector{X: t.X, Y: t.Y}
		step := cp.Vector{X: p.VX * dt, Y: p.VY * dt}
		dist := step.Length()
		if dist == 0 {
			return
		}

		var hits []ecs.Hit
		if pw != nil {
			hits = pw.CastRay(from, step, dist, component.MaskAll.Without(component.FactionPickup), func(h ecs.Hit) bool {
				if friendly(p.Owner, h.Faction) {
					return true
				}
				if health, ok := ecs.Get(w, h.Entity, component.HealthComponent.Kind()); ok && health.Dead {
					return true
				}
				return false
			})
		}

		if len(hits) == 0 {
			t.X += step.X
			t.Y += step.Y
			return
		}

		hit := hits[0]
		if component.CanDamage(p.Owner, hit.Faction) {
			s.damage.Apply(w, hit.Entity, p.Damage)
		}
		ecs.DestroyEntity(w, e)
	})
}
