package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/common"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
)

// HostileAISystem runs the chase/wander state machine of every live agent.
// Perception is a ray from the agent toward the defender: if nothing that
// blocks sight lies in between, the agent chases.
type HostileAISystem struct {
	spec prefabs.AgentSpec
	rng  *rand.Rand
}

func NewHostileAISystem(spec prefabs.AgentSpec, rng *rand.Rand) *HostileAISystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &HostileAISystem{spec: spec, rng: rng}
}

func (s *HostileAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	defender, defenderPos, haveDefender := s.resolveDefender(w)
	dt := w.Delta()

	ecs.ForEach2(w, component.HostileComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, agent *component.Hostile, h *component.Health) {
		if h.Dead {
			setVelocity(w, e, cp.Vector{})
			return
		}
		if h.Current <= 0 {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		pos := cp.Vector{X: t.X, Y: t.Y}

		if !haveDefender {
			agent.State = component.AgentWandering
			setVelocity(w, e, cp.Vector{})
			return
		}

		prev := agent.State
		if s.canSee(w, pos, defender, defenderPos) {
			agent.State = component.AgentChasing
			agent.LastKnown = defenderPos
			agent.HasLastKnown = true
			agent.HasWanderTarget = false
		} else {
			agent.State = component.AgentWandering
			if prev == component.AgentChasing {
				agent.WanderTimer = s.spec.WanderTimeout
			}
		}

		switch agent.State {
		case component.AgentChasing:
			s.moveToward(w, e, t, pos, defenderPos, agent.Speed)
		default:
			s.wander(w, e, t, pos, agent, dt)
		}
	})
}

func (s *HostileAISystem) resolveDefender(w *ecs.World) (ecs.Entity, cp.Vector, bool) {
	e, ok := ecs.First(w, component.DefenderComponent.Kind())
	if !ok {
		return 0, cp.Vector{}, false
	}
	pos, ok := position(w, e)
	if !ok {
		return 0, cp.Vector{}, false
	}
	return e, pos, true
}

// canSee reports whether the first sight-blocking hit between from and the
// defender is the defender itself, or whether nothing blocks at all.
func (s *HostileAISystem) canSee(w *ecs.World, from cp.Vector, defender ecs.Entity, defenderPos cp.Vector) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return true
	}
	dir := defenderPos.Sub(from)
	if dir.LengthSq() == 0 {
		return true
	}
	hits := pw.CastRay(from, dir, s.spec.SightDistance, component.MaskAll.Without(component.FactionPickup), func(h ecs.Hit) bool {
		return h.Faction == component.FactionHostile
	})
	for _, hit := range hits {
		if hit.Entity == defender {
			return true
		}
		if component.BlocksSight(hit.Faction) {
			return false
		}
	}
	return true
}

func (s *HostileAISystem) moveToward(w *ecs.World, e ecs.Entity, t *component.Transform, from, to cp.Vector, speed float64) {
	d := to.Sub(from)
	if d.LengthSq() == 0 {
		setVelocity(w, e, cp.Vector{})
		return
	}
	dir := d.Normalize()
	setVelocity(w, e, dir.Mult(speed))
	t.Rotation = common.RotateTowards(t.Rotation, dir.ToAngle(), s.spec.RotationSpeed*w.Delta().Seconds())
}

func (s *HostileAISystem) wander(w *ecs.World, e ecs.Entity, t *component.Transform, pos cp.Vector, agent *component.Hostile, dt time.Duration) {
	if !agent.HasWanderTarget {
		setVelocity(w, e, cp.Vector{})
		agent.WanderTimer -= dt
		if agent.WanderTimer > 0 {
			return
		}
		center := pos
		if agent.HasLastKnown {
			center = agent.LastKnown
		}
		angle := s.rng.Float64() * 2 * math.Pi
		radius := s.spec.WanderMinRadius + s.rng.Float64()*(s.spec.WanderMaxRadius-s.spec.WanderMinRadius)
		agent.WanderTarget = center.Add(cp.ForAngle(angle).Mult(radius))
		agent.HasWanderTarget = true
		agent.WanderTimer = s.spec.WanderTimeout
	} else {
		agent.WanderTimer -= dt
	}

	// A target is given up on arrival, when the probe hits geometry, or once
	// it has been pursued for WanderTimeout.
	d := agent.WanderTarget.Sub(pos)
	dist := d.Length()
	if dist <= s.spec.ArrivalRadius || agent.WanderTimer <= 0 || s.blocked(w, pos, d, dist) {
		agent.HasWanderTarget = false
		agent.WanderTimer = 0
		setVelocity(w, e, cp.Vector{})
		return
	}
	s.moveToward(w, e, t, pos, agent.WanderTarget, agent.Speed*s.spec.WanderSpeedFactor)
}

// blocked probes a short distance toward the wander target for environment
// geometry.
func (s *HostileAISystem) blocked(w *ecs.World, pos, dir cp.Vector, dist float64) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return false
	}
	probe := math.Min(s.spec.ProbeDistance, dist)
	hits := pw.CastRay(pos, dir, probe, component.MaskOf(component.FactionEnvironment), func(h ecs.Hit) bool {
		return h.Faction == component.FactionHostile
	})
	return len(hits) > 0
}
