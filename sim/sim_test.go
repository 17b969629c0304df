package sim

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/milk9111/zombietown/economy"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/ecs/system"
	"github.com/milk9111/zombietown/storage"
)

const frame = time.Second / 60

func newTestSim(t *testing.T, store storage.Store) *Simulation {
	t.Helper()
	s, err := New(Options{Store: store, Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func agents(s *Simulation) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(s.World(), component.HostileComponent.Kind(), func(e ecs.Entity, _ *component.Hostile) {
		out = append(out, e)
	})
	return out
}

func run(s *Simulation, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Tick(frame)
	}
}

func TestFirstWaveScenario(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestSim(t, store)

	var completed []int
	kills := 0
	s.OnWaveCompleted(func(wave int) { completed = append(completed, wave) })
	s.OnKilled(func(_ ecs.Entity, f component.Faction) {
		if f == component.FactionHostile {
			kills++
		}
	})

	before := s.Snapshot().Currency
	if !s.StartWave() {
		t.Fatalf("StartWave failed")
	}
	spawned := agents(s)
	if len(spawned) != 3 {
		t.Fatalf("expected 3 agents, got %d", len(spawned))
	}
	for _, e := range spawned {
		h, _ := ecs.Get(s.World(), e, component.HealthComponent.Kind())
		if h.Current != 1 {
			t.Fatalf("wave 1 agent health %d", h.Current)
		}
		s.Damage().Apply(s.World(), e, 1)
	}

	run(s, s.Tuning().Agents.FadeDuration+100*time.Millisecond)

	snap := s.Snapshot()
	if snap.WaveActive || snap.Remaining != 0 {
		t.Fatalf("wave still active: %+v", snap)
	}
	if len(completed) != 1 || completed[0] != 1 {
		t.Fatalf("expected wavecompleted(1) once, got %v", completed)
	}
	if kills != 3 || snap.Currency-before != kills {
		t.Fatalf("kills %d, currency delta %d", kills, snap.Currency-before)
	}
	if v, _ := storage.LoadInt(store, storage.KeyCurrentWave); v != 1 {
		t.Fatalf("persisted wave %d", v)
	}
}

func TestStartWaveWhileActive(t *testing.T) {
	s := newTestSim(t, nil)
	s.StartWave()
	before := s.Snapshot()
	if s.StartWave() {
		t.Fatalf("StartWave should be rejected while active")
	}
	after := s.Snapshot()
	if after.Wave != before.Wave || after.Remaining != before.Remaining {
		t.Fatalf("state changed: %d/%d -> %d/%d", before.Wave, before.Remaining, after.Wave, after.Remaining)
	}
}

func TestContactDamageScenario(t *testing.T) {
	s := newTestSim(t, nil)
	w := s.World()
	pos, _ := ecs.Get(w, s.Defender(), component.TransformComponent.Kind())
	system.SpawnAgent(w, s.Tuning().Agents, system.AgentStats{Speed: 40, Health: 1, Strength: 1}, pos.X, pos.Y+30)

	run(s, 2000*time.Millisecond)

	snap := s.Snapshot()
	if snap.Health < 10-4 {
		t.Fatalf("more than 4 contact hits in 2000ms: health %d", snap.Health)
	}
	if snap.Health >= 10 {
		t.Fatalf("agent never landed a hit: health %d", snap.Health)
	}
}

func TestShopThroughSimulation(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = storage.SaveInt(store, storage.KeyPlayerTokens, 200)
	s := newTestSim(t, store)

	if s.Hire("hire_gunslinger") {
		t.Fatalf("hire before unlock should fail")
	}
	if !s.Purchase("bulletproof_vest") || s.Purchase("bulletproof_vest") {
		t.Fatalf("vest should sell exactly once")
	}
	if snap := s.Snapshot(); snap.MaxHealth != 20 || snap.Currency != 150 {
		t.Fatalf("after vest: max %d currency %d", snap.MaxHealth, snap.Currency)
	}
	if !s.Purchase("hire_gunslinger") {
		t.Fatalf("unlock failed")
	}
	if !s.Hire("hire_gunslinger") {
		t.Fatalf("hire failed")
	}

	s.StartWave()
	if n := ecs.Count(s.World(), component.AllyComponent.Kind()); n != 1 {
		t.Fatalf("expected the hired ally, got %d", n)
	}
	if err := s.TryHire("hire_gunslinger"); !errors.Is(err, economy.ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive, got %v", err)
	}

	for _, e := range agents(s) {
		s.Damage().Apply(s.World(), e, 10)
	}
	run(s, s.Tuning().Agents.FadeDuration+100*time.Millisecond)

	if n := ecs.Count(s.World(), component.AllyComponent.Kind()); n != 0 {
		t.Fatalf("ally should leave at wave end, got %d", n)
	}
	if s.Ledger().IsLeased("hire_gunslinger") || !s.Ledger().IsPurchased("hire_gunslinger") {
		t.Fatalf("lease should clear and unlock stay")
	}

	var vest ItemState
	for _, it := range s.Snapshot().Items {
		if it.ID == "bulletproof_vest" {
			vest = it
		}
	}
	if !vest.Purchased || vest.CanPurchase {
		t.Fatalf("vest state %+v", vest)
	}
}

func TestStateSurvivesReconstruction(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = storage.SaveInt(store, storage.KeyPlayerTokens, 60)
	s := newTestSim(t, store)
	s.Purchase("bulletproof_vest")
	h, _ := ecs.Get(s.World(), s.Defender(), component.HealthComponent.Kind())
	h.Current = 15
	s.Tick(frame)

	again := newTestSim(t, store)
	snap := again.Snapshot()
	if snap.MaxHealth != 20 {
		t.Fatalf("perk should apply once on reconstruction, max %d", snap.MaxHealth)
	}
	if snap.Health != 15 || snap.Currency != 10 {
		t.Fatalf("restored health %d currency %d", snap.Health, snap.Currency)
	}
}

func TestDefeatAndRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestSim(t, store)
	defeats := 0
	s.OnDefeated(func() { defeats++ })

	s.StartWave()
	s.Damage().Apply(s.World(), s.Defender(), 100)
	s.Damage().Apply(s.World(), s.Defender(), 100)
	if defeats != 1 || !s.Snapshot().Defeated {
		t.Fatalf("defeated fired %d times", defeats)
	}
	if s.Snapshot().Health != 0 {
		t.Fatalf("health below zero")
	}

	now := s.World().Now()
	s.Tick(frame)
	if s.World().Now() != now {
		t.Fatalf("defeated simulation should not advance")
	}
	if s.StartWave() || s.Purchase("bandage") {
		t.Fatalf("operations should be rejected after defeat")
	}

	s.Restart()
	snap := s.Snapshot()
	if snap.Defeated || snap.Wave != 0 || snap.WaveActive || snap.Health != snap.MaxHealth {
		t.Fatalf("restart left state behind: %+v", snap)
	}
	if len(agents(s)) != 0 || s.World().Timeline().Len() != 0 {
		t.Fatalf("restart left agents or timers")
	}
	if _, ok := store.Load(storage.KeyCurrentWave); ok {
		t.Fatalf("restart should clear the persisted wave")
	}
	if !s.StartWave() {
		t.Fatalf("a new run should start")
	}
}

func TestApplyTuningBetweenWaves(t *testing.T) {
	s := newTestSim(t, nil)
	next := *s.Tuning()
	next.Waves.AgentsPerWave = 5
	next.Name = "harder"

	if err := s.ApplyTuning(&next); err != nil {
		t.Fatalf("ApplyTuning: %v", err)
	}
	s.StartWave()
	if n := len(agents(s)); n != 5 {
		t.Fatalf("expected 5 agents with new tuning, got %d", n)
	}
	if err := s.ApplyTuning(&next); !errors.Is(err, economy.ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive mid-wave, got %v", err)
	}

	bad := next
	bad.Waves.AgentsPerWave = 0
	s2 := newTestSim(t, nil)
	if err := s2.ApplyTuning(&bad); err == nil {
		t.Fatalf("invalid tuning should be rejected")
	}
}
