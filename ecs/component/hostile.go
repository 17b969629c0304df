package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

type AgentState int

const (
	AgentWandering AgentState = iota
	AgentChasing
)

func (s AgentState) String() string {
	if s == AgentChasing {
		return "chasing"
	}
	return "wandering"
}

// Hostile is the per-agent AI and contact state of a zombie.
type Hostile struct {
	Speed    float64
	Strength int
	Armored  bool

	State AgentState

	WanderTarget    cp.Vector
	HasWanderTarget bool
	WanderTimer     time.Duration

	LastKnown    cp.Vector
	HasLastKnown bool

	// ContactTimer accumulates while touching a damageable target.
	ContactTimer time.Duration
}

var HostileComponent = NewComponent[Hostile]()
