package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// PickupSystem lets the defender collect ammo boxes and health packs it
// walks over.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}

	player, ok := ecs.First(w, component.DefenderComponent.Kind())
	if !ok || !component.CanCollect(factionOf(w, player)) {
		return
	}
	d, _ := ecs.Get(w, player, component.DefenderComponent.Kind())
	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	pos, _ := position(w, player)

	bb := cp.NewBBForCircle(pos, body.Radius)
	for _, hit := range w.PhysicsWorld().Overlapping(bb, component.MaskOf(component.FactionPickup)) {
		pickup, ok := ecs.Get(w, hit.Entity, component.PickupComponent.Kind())
		if !ok {
			continue
		}
		switch pickup.Kind {
		case component.PickupAmmo:
			d.AddAmmo(pickup.Amount)
		case component.PickupHealth:
			h.Heal(pickup.Amount)
		}
		log.Printf("pickup: collected %s (+%d)", pickup.Kind, pickup.Amount)
		ecs.DestroyEntity(w, hit.Entity)
	}
}
