package sim

import (
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

// ItemState is the afford/lock state of one shop entry.
type ItemState struct {
	ID        string
	Name      string
	Cost      int
	HirePrice int
	OneTime   bool
	Hire      bool

	Purchased   bool
	Leased      bool
	CanPurchase bool
	CanHire     bool
}

type DrawKind string

const (
	DrawDefender   DrawKind = "defender"
	DrawAgent      DrawKind = "agent"
	DrawAlly       DrawKind = "ally"
	DrawPickup     DrawKind = "pickup"
	DrawProjectile DrawKind = "projectile"
	DrawObstacle   DrawKind = "obstacle"
)

// Drawable is everything a renderer needs for one entity.
type Drawable struct {
	Entity   ecs.Entity
	Kind     DrawKind
	Faction  component.Faction
	X, Y     float64
	Rotation float64
	Radius   float64
	Width    float64
	Height   float64
	Dead     bool
	Armored  bool
	Label    string
}

// Snapshot is the plain data a presentation layer polls after each tick.
type Snapshot struct {
	Health    int
	MaxHealth int
	Currency  int
	Ammo      int
	Magazine  int
	Reserve   int
	Reloading bool

	Wave       int
	WaveActive bool
	Remaining  int
	Defeated   bool

	Items     []ItemState
	Drawables []Drawable
}

func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Wave:       s.waves.Wave(),
		WaveActive: s.waves.Active(),
		Remaining:  s.waves.Alive(),
		Defeated:   s.defeated,
	}
	w := s.world
	if d, ok := ecs.Get(w, s.defender, component.DefenderComponent.Kind()); ok {
		snap.Currency = d.Currency
		snap.Ammo = d.Ammo.Current
		snap.Magazine = d.Ammo.Magazine
		snap.Reserve = d.Ammo.Reserve
		snap.Reloading = d.Ammo.Reloading
	}
	if h, ok := ecs.Get(w, s.defender, component.HealthComponent.Kind()); ok {
		snap.Health = h.Display()
		snap.MaxHealth = h.Max
	}

	b, _ := s.buyer()
	for _, item := range s.ledger.Catalog().Items() {
		st := ItemState{
			ID:        item.ID,
			Name:      item.Name,
			Cost:      item.Cost,
			HirePrice: item.HirePrice,
			OneTime:   item.OneTime,
			Hire:      item.IsHire(),
			Purchased: s.ledger.IsPurchased(item.ID),
			Leased:    s.ledger.IsLeased(item.ID),
		}
		if b != nil {
			st.CanPurchase = s.ledger.CanPurchase(item.ID, b)
			st.CanHire = st.Hire && !snap.WaveActive && s.ledger.CanHire(item.ID, b)
		}
		snap.Items = append(snap.Items, st)
	}

	snap.Drawables = s.drawables()
	return snap
}

func (s *Simulation) drawables() []Drawable {
	w := s.world
	var out []Drawable
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		d := Drawable{Entity: e, X: t.X, Y: t.Y, Rotation: t.Rotation}
		if tag, ok := ecs.Get(w, e, component.FactionComponent.Kind()); ok {
			d.Faction = tag.Faction
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			d.Radius, d.Width, d.Height = body.Radius, body.Width, body.Height
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			d.Dead = h.Dead
		}

		switch {
		case ecs.Has(w, e, component.DefenderComponent.Kind()):
			d.Kind = DrawDefender
		case ecs.Has(w, e, component.HostileComponent.Kind()):
			d.Kind = DrawAgent
			hostile, _ := ecs.Get(w, e, component.HostileComponent.Kind())
			d.Armored = hostile.Armored
		case ecs.Has(w, e, component.AllyComponent.Kind()):
			d.Kind = DrawAlly
			if dialog, ok := ecs.Get(w, e, component.DialogComponent.Kind()); ok && dialog.Visible {
				d.Label = dialog.Text
			}
		case ecs.Has(w, e, component.PickupComponent.Kind()):
			d.Kind = DrawPickup
			p, _ := ecs.Get(w, e, component.PickupComponent.Kind())
			d.Label = string(p.Kind)
		case ecs.Has(w, e, component.ProjectileComponent.Kind()):
			d.Kind = DrawProjectile
		case ecs.Has(w, e, component.ObstacleComponent.Kind()):
			d.Kind = DrawObstacle
			o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
			d.Label = o.Kind
		default:
			return
		}
		out = append(out, d)
	})
	return out
}
