package component

type PickupKind string

const (
	PickupAmmo   PickupKind = "ammo"
	PickupHealth PickupKind = "health"
)

type Pickup struct {
	Kind   PickupKind
	Amount int
	Width  float64
	Height float64
}

var PickupComponent = NewComponent[Pickup]()
