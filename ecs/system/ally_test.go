package system

import (
	"testing"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
)

func TestAllyShootsNearestHostileInRange(t *testing.T) {
	w, tuning := newTestWorld(t)
	as := NewAllySystem(tuning.Ally, tuning.Projectile)
	timeline := NewTimelineSystem()
	timeline.Handle(ecs.TimelineDialogTimeout, HideDialog)

	ally := SpawnAlly(w, tuning.Ally, "hire_gunslinger", 400, 200)
	SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 1}, 400, 450)
	SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 1}, 400, 1000)

	step(w, as)

	if got := ecs.Count(w, component.ProjectileComponent.Kind()); got != 1 {
		t.Fatalf("expected one shot, got %d", got)
	}
	p, _ := ecs.First(w, component.ProjectileComponent.Kind())
	proj, _ := ecs.Get(w, p, component.ProjectileComponent.Kind())
	if proj.Owner != component.FactionAlly || proj.VY <= 0 {
		t.Fatalf("unexpected projectile %+v", proj)
	}
	dialog, _ := ecs.Get(w, ally, component.DialogComponent.Kind())
	if !dialog.Visible {
		t.Fatalf("dialog should show after a shot")
	}

	// Cooldown holds the next shot.
	step(w, as)
	if got := ecs.Count(w, component.ProjectileComponent.Kind()); got != 1 {
		t.Fatalf("ally fired during cooldown: %d", got)
	}

	w.Advance(tuning.Ally.DialogDuration)
	timeline.Update(w)
	if dialog.Visible {
		t.Fatalf("dialog should hide after its timeout")
	}

	w.Advance(tuning.Ally.Cooldown)
	as.Update(w)
	if got := ecs.Count(w, component.ProjectileComponent.Kind()); got != 2 {
		t.Fatalf("expected a second shot after cooldown, got %d", got)
	}
}

func TestAllyIdlesWithoutTargets(t *testing.T) {
	w, tuning := newTestWorld(t)
	as := NewAllySystem(tuning.Ally, tuning.Projectile)
	damage := NewDamage(tuning.Agents.FadeDuration)

	SpawnAlly(w, tuning.Ally, "hire_gunslinger", 400, 200)
	far := SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 1}, 400, 200+tuning.Ally.Range+50)
	near := SpawnAgent(w, tuning.Agents, AgentStats{Health: 1, Strength: 1}, 420, 220)
	damage.Apply(w, near, 1)

	step(w, as)
	if got := ecs.Count(w, component.ProjectileComponent.Kind()); got != 0 {
		t.Fatalf("ally shot at a dead or distant agent: %d", got)
	}
	if !ecs.IsAlive(w, far) {
		t.Fatalf("far agent vanished")
	}
}
