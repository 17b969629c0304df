package component

import "time"

// Intent is what the presentation layer wants the defender to do this tick.
type Intent struct {
	MoveX  float64
	MoveY  float64
	AimX   float64
	AimY   float64
	Aiming bool
	Fire   bool
	Reload bool
}

type Ammo struct {
	Current   int
	Magazine  int
	Reserve   int
	Reloading bool
}

// Defender is the player-controlled survivor.
type Defender struct {
	Currency int
	Ammo     Ammo
	Speed    float64

	ShotCooldown time.Duration
	NextShot     time.Duration
	ReloadTime   time.Duration

	Intent Intent

	// PerksApplied is set once purchased perks were applied to this
	// construction of the defender.
	PerksApplied bool
}

func (d *Defender) AddAmmo(n int) {
	if d == nil || n <= 0 {
		return
	}
	d.Ammo.Reserve += n
}

func (d *Defender) Spend(n int) {
	if d == nil {
		return
	}
	d.Currency -= n
	if d.Currency < 0 {
		d.Currency = 0
	}
}

var DefenderComponent = NewComponent[Defender]()
