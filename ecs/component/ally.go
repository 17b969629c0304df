package component

import "time"

// Ally is a hired helper that shoots at hostiles for one wave.
type Ally struct {
	ItemID   string
	Range    float64
	Cooldown time.Duration
	NextShot time.Duration
}

var AllyComponent = NewComponent[Ally]()

// Dialog is a short speech bubble shown above an entity.
type Dialog struct {
	Text    string
	Visible bool
}

var DialogComponent = NewComponent[Dialog]()
