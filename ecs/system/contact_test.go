package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
)

func TestContactDamageIsThrottled(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)
	physics := NewPhysicsSystem()
	contact := NewContactDamageSystem(tuning.Agents.ContactInterval, damage)

	defenderPos := cp.Vector{X: 400, Y: 300}
	agentPos := cp.Vector{X: 400, Y: 320}
	defender := SpawnDefender(w, tuning.Defender, defenderPos.X, defenderPos.Y)
	agent := SpawnAgent(w, tuning.Agents, AgentStats{Speed: 50, Health: 1, Strength: 1}, agentPos.X, agentPos.Y)

	start := healthOf(t, w, defender).Current
	var elapsed time.Duration
	for elapsed < 2000*time.Millisecond {
		pin(w, defender, defenderPos)
		pin(w, agent, agentPos)
		step(w, physics, contact)
		elapsed += tick
	}

	lost := start - healthOf(t, w, defender).Current
	if lost < 1 {
		t.Fatalf("expected sustained contact to hurt the defender")
	}
	if lost > 4 {
		t.Fatalf("expected at most 4 hits in 2000ms, got %d", lost)
	}
}

func TestContactIgnoresDeadAgents(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)
	physics := NewPhysicsSystem()
	contact := NewContactDamageSystem(tuning.Agents.ContactInterval, damage)

	defenderPos := cp.Vector{X: 200, Y: 200}
	agentPos := cp.Vector{X: 200, Y: 215}
	defender := SpawnDefender(w, tuning.Defender, defenderPos.X, defenderPos.Y)
	agent := SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 3}, agentPos.X, agentPos.Y)
	damage.Apply(w, agent, 1)

	start := healthOf(t, w, defender).Current
	for i := 0; i < 40; i++ {
		pin(w, defender, defenderPos)
		pin(w, agent, agentPos)
		step(w, physics, contact)
	}
	if got := healthOf(t, w, defender).Current; got != start {
		t.Fatalf("dead agent dealt damage: %d -> %d", start, got)
	}
	if !ecs.IsAlive(w, agent) {
		t.Fatalf("agent should still be fading")
	}
}
