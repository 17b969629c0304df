package system

import (
	"testing"
	"time"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

func TestDamageTriggersDeathOnce(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)
	timeline := NewTimelineSystem()
	timeline.Handle(ecs.TimelineDeathFade, damage.Remove)

	var killed []ecs.Signal
	w.Signals().Subscribe(ecs.SignalKilled, func(sig ecs.Signal) { killed = append(killed, sig) })

	agent := SpawnAgent(w, tuning.Agents, AgentStats{Speed: 50, Health: 1, Strength: 1}, 100, 100)

	started := 0
	for i := 0; i < 5; i++ {
		if damage.Apply(w, agent, 1) {
			started++
		}
	}
	if started != 1 {
		t.Fatalf("death sequence started %d times", started)
	}
	h := healthOf(t, w, agent)
	if !h.Dead || !h.DeathTriggered {
		t.Fatalf("expected dead agent, got %+v", h)
	}
	if h.Display() < 0 {
		t.Fatalf("display health below zero: %d", h.Display())
	}
	if got := w.Timeline().Len(); got != 1 {
		t.Fatalf("expected one fade event, got %d", got)
	}

	// Removal waits for the fade.
	w.Advance(tuning.Agents.FadeDuration - time.Millisecond)
	timeline.Update(w)
	if !ecs.IsAlive(w, agent) || len(killed) != 0 {
		t.Fatalf("agent removed before the fade finished")
	}
	w.Advance(time.Millisecond)
	timeline.Update(w)
	if ecs.IsAlive(w, agent) {
		t.Fatalf("agent still alive after fade")
	}
	if len(killed) != 1 || killed[0].Entity != agent || killed[0].Faction != component.FactionHostile {
		t.Fatalf("unexpected killed signals: %+v", killed)
	}

	if damage.Apply(w, agent, 1) {
		t.Fatalf("damage on a removed entity should be ignored")
	}
}

func TestDamageOverkillClampsDisplay(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)

	cases := []struct {
		name   string
		health int
		hits   []int
	}{
		{name: "exact", health: 3, hits: []int{3}},
		{name: "overkill", health: 1, hits: []int{5}},
		{name: "same tick burst", health: 2, hits: []int{1, 1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			agent := SpawnAgent(w, tuning.Agents, AgentStats{Health: tc.health, Strength: 1}, 50, 50)
			for _, amount := range tc.hits {
				damage.Apply(w, agent, amount)
			}
			h := healthOf(t, w, agent)
			if h.Display() != 0 {
				t.Fatalf("expected display 0, got %d", h.Display())
			}
			if !h.Dead {
				t.Fatalf("expected dead")
			}
		})
	}
}

func TestDefenderDefeatedOnce(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)

	defeated := 0
	w.Signals().Subscribe(ecs.SignalDefeated, func(ecs.Signal) { defeated++ })

	defender := SpawnDefender(w, tuning.Defender, 400, 90)
	damage.Apply(w, defender, 7)
	damage.Apply(w, defender, 7)
	damage.Apply(w, defender, 7)

	h := healthOf(t, w, defender)
	if h.Current != 0 {
		t.Fatalf("defender health should floor at 0, got %d", h.Current)
	}
	if defeated != 1 {
		t.Fatalf("defeated fired %d times", defeated)
	}
	if !ecs.IsAlive(w, defender) {
		t.Fatalf("defender should stay in the world")
	}
	if w.Timeline().Len() != 0 {
		t.Fatalf("defender must not schedule a fade")
	}
}

func TestFadeAfterRemovalIsNoop(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)
	timeline := NewTimelineSystem()
	timeline.Handle(ecs.TimelineDeathFade, damage.Remove)

	killed := 0
	w.Signals().Subscribe(ecs.SignalKilled, func(ecs.Signal) { killed++ })

	agent := SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 1}, 10, 10)
	damage.Apply(w, agent, 1)
	ecs.DestroyEntity(w, agent)

	w.Advance(2 * tuning.Agents.FadeDuration)
	timeline.Update(w)
	if killed != 0 {
		t.Fatalf("removed entity should not emit killed")
	}
}

func TestAllyDeathFadesBeforeRemoval(t *testing.T) {
	w, tuning := newTestWorld(t)
	damage := NewDamage(tuning.Agents.FadeDuration)
	timeline := NewTimelineSystem()
	timeline.Handle(ecs.TimelineDeathFade, damage.Remove)

	var killed []ecs.Signal
	w.Signals().Subscribe(ecs.SignalKilled, func(sig ecs.Signal) { killed = append(killed, sig) })

	ally := SpawnAlly(w, tuning.Ally, "hire_gunslinger", 200, 200)
	if !damage.Apply(w, ally, tuning.Ally.Health) {
		t.Fatalf("lethal damage should start the death sequence")
	}
	if !healthOf(t, w, ally).Dead || w.Timeline().Len() != 1 {
		t.Fatalf("ally should be dead with a pending fade")
	}
	if !ecs.IsAlive(w, ally) || len(killed) != 0 {
		t.Fatalf("ally removed before its fade")
	}

	w.Advance(tuning.Agents.FadeDuration)
	timeline.Update(w)
	if ecs.IsAlive(w, ally) {
		t.Fatalf("ally still alive after fade")
	}
	if len(killed) != 1 || killed[0].Faction != component.FactionAlly {
		t.Fatalf("unexpected killed signals: %+v", killed)
	}
}
