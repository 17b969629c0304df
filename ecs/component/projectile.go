package component

import "time"

// Projectile moves in a straight line until it hits something or expires.
type Projectile struct {
	Owner   Faction
	VX      float64
	VY      float64
	Damage  int
	Expires time.Duration
}

var ProjectileComponent = NewComponent[Projectile]()
