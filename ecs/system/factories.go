package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/levels"
	"github.com/milk9111/zombietown/prefabs"
)

// AgentStats is one rolled roster entry.
type AgentStats struct {
	Speed    float64
	Health   int
	Strength int
	Armored  bool
}

func addPose(w *ecs.World, e ecs.Entity, f component.Faction, x, y, rotation float64) {
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Rotation: rotation})
	_ = ecs.Add(w, e, component.FactionComponent.Kind(), &component.FactionTag{Faction: f})
}

// SpawnObstacle adds a static building or cactus from the level layout.
func SpawnObstacle(w *ecs.World, spec levels.Entity) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, component.FactionEnvironment, spec.X, spec.Y, 0)
	_ = ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{Kind: spec.Type, Width: spec.Width, Height: spec.Height})
	if pw := w.PhysicsWorld(); pw != nil {
		if body := pw.AddStaticBox(e, component.FactionEnvironment, cp.Vector{X: spec.X, Y: spec.Y}, spec.Width, spec.Height, false); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	}
	return e
}

// SpawnDefender creates the survivor with full health and a loaded gun.
func SpawnDefender(w *ecs.World, spec prefabs.DefenderSpec, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, component.FactionPlayer, x, y, math.Pi/2)

	health := spec.Health
	if health <= 0 || health > spec.MaxHealth {
		health = spec.MaxHealth
	}
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: spec.MaxHealth})
	_ = ecs.Add(w, e, component.DefenderComponent.Kind(), &component.Defender{
		Ammo:         component.Ammo{Current: spec.Magazine, Magazine: spec.Magazine, Reserve: spec.Reserve},
		Speed:        spec.Speed,
		ShotCooldown: spec.ShotCooldown,
		ReloadTime:   spec.ReloadTime,
	})
	if pw := w.PhysicsWorld(); pw != nil {
		if body := pw.AddCircleBody(e, component.FactionPlayer, cp.Vector{X: x, Y: y}, spec.Radius); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	}
	return e
}

// SpawnAgent creates a wandering zombie. Its contact timer starts full so
// the first touch lands immediately.
func SpawnAgent(w *ecs.World, spec prefabs.AgentSpec, stats AgentStats, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, component.FactionHostile, x, y, -math.Pi/2)

	health := stats.Health
	if health < 1 {
		health = 1
	}
	strength := stats.Strength
	if strength < 1 {
		strength = 1
	}
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health})
	_ = ecs.Add(w, e, component.HostileComponent.Kind(), &component.Hostile{
		Speed:        math.Max(0, stats.Speed),
		Strength:     strength,
		Armored:      stats.Armored,
		State:        component.AgentWandering,
		ContactTimer: spec.ContactInterval,
	})
	if pw := w.PhysicsWorld(); pw != nil {
		if body := pw.AddCircleBody(e, component.FactionHostile, cp.Vector{X: x, Y: y}, spec.Radius); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	}
	return e
}

// SpawnAlly creates a hired gunslinger for itemID.
func SpawnAlly(w *ecs.World, spec prefabs.AllySpec, itemID string, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, component.FactionAlly, x, y, -math.Pi/2)
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health})
	_ = ecs.Add(w, e, component.AllyComponent.Kind(), &component.Ally{ItemID: itemID, Range: spec.Range, Cooldown: spec.Cooldown})
	_ = ecs.Add(w, e, component.DialogComponent.Kind(), &component.Dialog{Text: spec.Dialog})
	if pw := w.PhysicsWorld(); pw != nil {
		if body := pw.AddCircleBody(e, component.FactionAlly, cp.Vector{X: x, Y: y}, spec.Radius); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	}
	return e
}

// SpawnProjectile fires a bullet from (x, y) along angle. Projectiles have
// no physics shape; they sweep with ray casts instead.
func SpawnProjectile(w *ecs.World, spec prefabs.ProjectileSpec, owner component.Faction, x, y, angle float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, owner, x, y, angle)
	dir := cp.ForAngle(angle)
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Owner:   owner,
		VX:      dir.X * spec.Speed,
		VY:      dir.Y * spec.Speed,
		Damage:  spec.Damage,
		Expires: w.Now() + spec.Lifetime,
	})
	return e
}

// SpawnPickup drops a collectible centered on (x, y).
func SpawnPickup(w *ecs.World, kind component.PickupKind, spec prefabs.PickupTimeSpec, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	addPose(w, e, component.FactionPickup, x, y, 0)
	_ = ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind, Amount: spec.Amount, Width: spec.Width, Height: spec.Height})
	if pw := w.PhysicsWorld(); pw != nil {
		if body := pw.AddStaticBox(e, component.FactionPickup, cp.Vector{X: x, Y: y}, spec.Width, spec.Height, true); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	}
	return e
}

func position(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

func factionOf(w *ecs.World, e ecs.Entity) component.Faction {
	tag, ok := ecs.Get(w, e, component.FactionComponent.Kind())
	if !ok {
		return component.FactionNone
	}
	return tag.Faction
}

func setVelocity(w *ecs.World, e ecs.Entity, v cp.Vector) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocityVector(v)
	}
}
