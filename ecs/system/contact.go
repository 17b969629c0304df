package system

import (
	"time"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// ContactDamageSystem hurts whatever a live hostile is touching, at most
// once per Interval per hostile.
type ContactDamageSystem struct {
	Interval time.Duration
	damage   *Damage
}

func NewContactDamageSystem(interval time.Duration, damage *Damage) *ContactDamageSystem {
	return &ContactDamageSystem{Interval: interval, damage: damage}
}

func (s *ContactDamageSystem) Update(w *ecs.World) {
	if s == nil || w == nil || w.PhysicsWorld() == nil {
		return
	}

	touching := make(map[ecs.Entity][]ecs.Entity)
	var order []ecs.Entity
	for _, c := range w.PhysicsWorld().Contacts() {
		if !ecs.IsAlive(w, c.A) || !ecs.IsAlive(w, c.B) {
			continue
		}
		if !component.CanDamage(component.FactionHostile, factionOf(w, c.B)) {
			continue
		}
		if h, ok := ecs.Get(w, c.B, component.HealthComponent.Kind()); !ok || h.Dead {
			continue
		}
		if _, seen := touching[c.A]; !seen {
			order = append(order, c.A)
		}
		touching[c.A] = append(touching[c.A], c.B)
	}

	dt := w.Delta()
	for _, agent := range order {
		targets := touching[agent]
		hostile, ok := ecs.Get(w, agent, component.HostileComponent.Kind())
		if !ok {
			continue
		}
		if h, ok := ecs.Get(w, agent, component.HealthComponent.Kind()); !ok || h.Dead || h.Current <= 0 {
			continue
		}
		hostile.ContactTimer += dt
		if hostile.ContactTimer < s.Interval {
			continue
		}
		hostile.ContactTimer = 0
		for _, target := range targets {
			s.damage.Apply(w, target, hostile.Strength)
		}
	}
}
