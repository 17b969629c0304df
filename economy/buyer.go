package economy

import (
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// Buyer is whatever pays for and receives shop items.
type Buyer interface {
	Currency() int
	Spend(n int)
	AddAmmo(n int)
	Heal(n int)
	IncreaseMaxHealth(n int)
}

type defenderBuyer struct {
	defender *component.Defender
	health   *component.Health
}

// BuyerFor adapts the defender entity e. It returns nil when e is not a
// defender.
func BuyerFor(w *ecs.World, e ecs.Entity) Buyer {
	d, ok := ecs.Get(w, e, component.DefenderComponent.Kind())
	if !ok {
		return nil
	}
	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	return &defenderBuyer{defender: d, health: h}
}

func (b *defenderBuyer) Currency() int           { return b.defender.Currency }
func (b *defenderBuyer) Spend(n int)             { b.defender.Spend(n) }
func (b *defenderBuyer) AddAmmo(n int)           { b.defender.AddAmmo(n) }
func (b *defenderBuyer) Heal(n int)              { b.health.Heal(n) }
func (b *defenderBuyer) IncreaseMaxHealth(n int) { b.health.IncreaseMax(n) }
