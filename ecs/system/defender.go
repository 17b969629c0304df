package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/common"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
)

// DefenderSystem turns the defender's Intent into movement, aim, shots and
// reloads.
type DefenderSystem struct {
	spec       prefabs.DefenderSpec
	projectile prefabs.ProjectileSpec
}

func NewDefenderSystem(spec prefabs.DefenderSpec, projectile prefabs.ProjectileSpec) *DefenderSystem {
	return &DefenderSystem{spec: spec, projectile: projectile}
}

func (s *DefenderSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.DefenderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.Defender, t *component.Transform) {
		intent := d.Intent
		d.Intent.Reload = false

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			setVelocity(w, e, cp.Vector{})
			return
		}

		move := cp.Vector{X: intent.MoveX, Y: intent.MoveY}
		if move.LengthSq() > 0 {
			move = move.Normalize().Mult(d.Speed)
		}
		setVelocity(w, e, move)

		if intent.Aiming {
			aim := cp.Vector{X: intent.AimX - t.X, Y: intent.AimY - t.Y}
			if aim.LengthSq() > 0 {
				t.Rotation = common.WrapAngle(aim.ToAngle())
			}
		}

		if intent.Reload {
			StartReload(w, e)
		}
		if intent.Fire {
			s.fire(w, e, d, t)
		}
	})
}

func (s *DefenderSystem) fire(w *ecs.World, e ecs.Entity, d *component.Defender, t *component.Transform) bool {
	if d.Ammo.Reloading || w.Now() < d.NextShot {
		return false
	}
	if d.Ammo.Current <= 0 {
		StartReload(w, e)
		return false
	}

	muzzle := cp.Vector{X: s.spec.GunOffsetX, Y: s.spec.GunOffsetY}.Rotate(cp.ForAngle(t.Rotation))
	SpawnProjectile(w, s.projectile, component.FactionPlayer, t.X+muzzle.X, t.Y+muzzle.Y, t.Rotation)
	d.Ammo.Current--
	d.NextShot = w.Now() + d.ShotCooldown

	if d.Ammo.Current == 0 {
		StartReload(w, e)
	}
	return true
}

// StartReload schedules a reload for the defender e. It refuses while a
// reload is running, when the magazine is full or when no reserve is left.
func StartReload(w *ecs.World, e ecs.Entity) bool {
	d, ok := ecs.Get(w, e, component.DefenderComponent.Kind())
	if !ok {
		return false
	}
	if d.Ammo.Reloading || d.Ammo.Reserve <= 0 || d.Ammo.Current >= d.Ammo.Magazine {
		return false
	}
	d.Ammo.Reloading = true
	w.Timeline().Schedule(w.Now()+d.ReloadTime, ecs.TimelineReload, e)
	return true
}

// CompleteReload moves rounds from the reserve into the magazine.
func CompleteReload(w *ecs.World, e ecs.Entity) {
	d, ok := ecs.Get(w, e, component.DefenderComponent.Kind())
	if !ok || !d.Ammo.Reloading {
		return
	}
	need := common.ClampInt(d.Ammo.Magazine-d.Ammo.Current, 0, d.Ammo.Reserve)
	d.Ammo.Current += need
	d.Ammo.Reserve -= need
	d.Ammo.Reloading = false
	log.Printf("defender: reloaded %d/%d (reserve %d)", d.Ammo.Current, d.Ammo.Magazine, d.Ammo.Reserve)
}
