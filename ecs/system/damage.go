package system

import (
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// Damage applies hits to anything with Health and runs the death sequence:
// mark dead, drop out of collisions, wait FadeDuration, then remove the
// entity and emit a killed signal.
type Damage struct {
	FadeDuration time.Duration
}

func NewDamage(fade time.Duration) *Damage {
	return &Damage{FadeDuration: fade}
}

// Apply subtracts amount from e's health. It reports whether this call
// started the death sequence; later hits on a dying entity are ignored.
func (d *Damage) Apply(w *ecs.World, e ecs.Entity, amount int) bool {
	if d == nil || w == nil || amount <= 0 || !ecs.IsAlive(w, e) {
		return false
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return false
	}

	h.Current -= amount

	if ecs.Has(w, e, component.DefenderComponent.Kind()) {
		if h.Current < 0 {
			h.Current = 0
		}
		if h.Current > 0 || h.DeathTriggered {
			return false
		}
		h.DeathTriggered = true
		h.Dead = true
		setVelocity(w, e, cp.Vector{})
		log.Printf("damage: defender %s defeated", e)
		w.Signals().Emit(ecs.Signal{Kind: ecs.SignalDefeated, Entity: e, Faction: component.FactionPlayer})
		return true
	}

	if h.Current > 0 || h.DeathTriggered {
		return false
	}
	h.DeathTriggered = true
	d.die(w, e, h)
	return true
}

func (d *Damage) die(w *ecs.World, e ecs.Entity, h *component.Health) {
	h.Dead = true
	if hostile, ok := ecs.Get(w, e, component.HostileComponent.Kind()); ok {
		hostile.Speed = 0
		hostile.HasWanderTarget = false
	}
	setVelocity(w, e, cp.Vector{})
	if pw := w.PhysicsWorld(); pw != nil {
		pw.SetSensor(e, true)
	}
	w.Timeline().Schedule(w.Now()+d.FadeDuration, ecs.TimelineDeathFade, e)
}

// Remove finishes a death fade. It is a no-op for entities that are gone
// or were never killed.
func (d *Damage) Remove(w *ecs.World, e ecs.Entity) {
	if w == nil || !ecs.IsAlive(w, e) {
		return
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || !h.Dead {
		return
	}
	faction := factionOf(w, e)
	ecs.DestroyEntity(w, e)
	w.Signals().Emit(ecs.Signal{Kind: ecs.SignalKilled, Entity: e, Faction: faction})
}

// TimelineSystem drains due timeline events and hands each to the handler
// registered for its kind.
type TimelineSystem struct {
	handlers map[ecs.TimelineEventKind]func(*ecs.World, ecs.Entity)
}

func NewTimelineSystem() *TimelineSystem {
	return &TimelineSystem{handlers: make(map[ecs.TimelineEventKind]func(*ecs.World, ecs.Entity))}
}

func (s *TimelineSystem) Handle(kind ecs.TimelineEventKind, fn func(*ecs.World, ecs.Entity)) {
	if s == nil || fn == nil {
		return
	}
	s.handlers[kind] = fn
}

func (s *TimelineSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.DrainTimeline() {
		// An earlier handler in this batch may have removed the entity.
		if !ecs.IsAlive(w, evt.Entity) {
			continue
		}
		if fn := s.handlers[evt.Kind]; fn != nil {
			fn(w, evt.Entity)
		}
	}
}
