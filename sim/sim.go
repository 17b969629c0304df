package sim

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/economy"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/ecs/system"
	"github.com/milk9111/zombietown/levels"
	"github.com/milk9111/zombietown/prefabs"
	"github.com/milk9111/zombietown/storage"
)

// DefaultLevel is the layout used when Options.Level is nil.
const DefaultLevel = "town.json"

var ErrDefeated = errors.New("sim: defender defeated")

// Intent is what the presentation layer asks of the defender each tick.
type Intent = component.Intent

type Options struct {
	Tuning *prefabs.Tuning
	Level  *levels.Level
	Store  storage.Store
	Rand   *rand.Rand
}

// Simulation wires the world, its systems, the wave scheduler and the hire
// ledger together. Everything it needs is passed in through Options.
type Simulation struct {
	tuning *prefabs.Tuning
	level  *levels.Level
	store  storage.Store
	rng    *rand.Rand

	world    *ecs.World
	defender ecs.Entity
	defeated bool

	damage   *system.Damage
	timeline *system.TimelineSystem
	waves    *system.WaveScheduler
	spawner  *system.AmbientSpawnerSystem
	save     *system.SaveSystem
	ledger   *economy.Ledger

	passes []*ecs.Scheduler

	killedHandlers    []func(ecs.Entity, component.Faction)
	completedHandlers []func(int)
	defeatedHandlers  []func()
}

func New(opts Options) (*Simulation, error) {
	s := &Simulation{
		tuning: opts.Tuning,
		level:  opts.Level,
		store:  opts.Store,
		rng:    opts.Rand,
	}
	if s.tuning == nil {
		s.tuning = prefabs.DefaultTuning()
	}
	if err := s.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("sim: tuning: %w", err)
	}
	if s.level == nil {
		level, err := levels.LoadLevelFromFS(DefaultLevel)
		if err != nil {
			return nil, fmt.Errorf("sim: level: %w", err)
		}
		s.level = level
	}
	if s.store == nil {
		s.store = storage.NewMemoryStore()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.world = ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	s.world.SetPhysicsWorld(pw)
	pw.AddBounds(float64(s.level.Width), float64(s.level.Height))
	for _, obstacle := range s.level.Obstacles() {
		system.SpawnObstacle(s.world, obstacle)
	}

	if err := s.wire(); err != nil {
		return nil, err
	}
	s.subscribe()
	s.spawnDefender()
	return s, nil
}

// wire builds every tuning-dependent system. The world and its entities
// are left untouched.
func (s *Simulation) wire() error {
	t := s.tuning

	catalog, err := economy.NewCatalog(t.Shop)
	if err != nil {
		return fmt.Errorf("sim: shop: %w", err)
	}
	var roster system.Roster = system.FormulaRoster{Spec: t.Waves}
	if t.Waves.RosterScript != "" {
		script, err := system.NewScriptRoster(t.Waves.RosterScript, t.Waves)
		if err != nil {
			return fmt.Errorf("sim: %w", err)
		}
		roster = script
	}

	s.ledger = economy.NewLedger(catalog, s.store, t.Agents.Reward)
	s.ledger.RegisterAlly("gunslinger", s.spawnAlly)

	s.damage = system.NewDamage(t.Agents.FadeDuration)
	s.timeline = system.NewTimelineSystem()
	s.timeline.Handle(ecs.TimelineDeathFade, s.damage.Remove)
	s.timeline.Handle(ecs.TimelineReload, system.CompleteReload)
	s.timeline.Handle(ecs.TimelineDialogTimeout, system.HideDialog)

	s.waves = system.NewWaveScheduler(t.Waves, t.Agents, roster, s.store, s.rng, float64(s.level.Width), float64(s.level.Height))
	cx, cy := s.level.Center()
	s.spawner = system.NewAmbientSpawnerSystem(t.Spawner, cp.Vector{X: cx, Y: cy}, s.rng, s.waves.Active)
	s.save = system.NewSaveSystem(s.store)

	s.passes = []*ecs.Scheduler{
		ecs.NewScheduler(
			system.NewDefenderSystem(t.Defender, t.Projectile),
			system.NewHostileAISystem(t.Agents, s.rng),
			system.NewAllySystem(t.Ally, t.Projectile),
			system.NewPhysicsSystem(),
		),
		ecs.NewScheduler(
			system.NewProjectileSystem(s.damage),
			system.NewContactDamageSystem(t.Agents.ContactInterval, s.damage),
			system.NewPickupSystem(),
		),
		ecs.NewScheduler(s.timeline),
		ecs.NewScheduler(s.spawner, s.save),
	}
	return nil
}

// subscribe routes world signals. Handlers look up the current systems so
// ApplyTuning can swap them.
func (s *Simulation) subscribe() {
	signals := s.world.Signals()
	signals.Subscribe(ecs.SignalKilled, func(sig ecs.Signal) {
		s.ledger.OnKilled(s.world, sig)
		for _, fn := range s.killedHandlers {
			fn(sig.Entity, sig.Faction)
		}
		s.waves.OnKilled(s.world, sig)
	})
	signals.Subscribe(ecs.SignalWaveCompleted, func(sig ecs.Signal) {
		s.ledger.OnWaveEnd(s.world)
		for _, fn := range s.completedHandlers {
			fn(sig.Wave)
		}
	})
	signals.Subscribe(ecs.SignalDefeated, func(ecs.Signal) {
		s.defeated = true
		log.Printf("sim: defender defeated on wave %d", s.waves.Wave())
		for _, fn := range s.defeatedHandlers {
			fn()
		}
	})
}

func (s *Simulation) spawnDefender() {
	x, y := s.level.Center()
	if spot, ok := s.level.Find(levels.EntityDefender); ok {
		x, y = spot.X, spot.Y
	}
	s.defender = system.SpawnDefender(s.world, s.tuning.Defender, x, y)
	s.ledger.ApplyPurchasedPerks(s.world, s.defender)
	system.LoadDefender(s.store, s.world, s.defender)
}

func (s *Simulation) spawnAlly(w *ecs.World, itemID string) ecs.Entity {
	cx, _ := s.level.Center()
	x, y := cx+150, 200.0
	if spot, ok := s.level.Find(levels.EntityAllySpawn); ok {
		x, y = spot.X, spot.Y
	}
	return system.SpawnAlly(w, s.tuning.Ally, itemID, x, y)
}

// Tick advances the simulation by dt. Passes run in order: movement,
// collision and damage, removals, then scheduler and persistence. A
// defeated simulation does not advance until Restart.
func (s *Simulation) Tick(dt time.Duration) {
	if s.defeated || dt <= 0 {
		return
	}
	s.world.Advance(dt)
	for _, pass := range s.passes {
		pass.Update(s.world)
	}
}

// StartWave begins the next wave and brings in hired allies. It reports
// false while a wave is running or after defeat.
func (s *Simulation) StartWave() bool {
	if s.defeated {
		return false
	}
	if !s.waves.StartWave(s.world) {
		return false
	}
	s.spawner.Reset()
	s.ledger.OnWaveStart(s.world)
	return true
}

func (s *Simulation) buyer() (economy.Buyer, error) {
	if s.defeated {
		return nil, ErrDefeated
	}
	b := economy.BuyerFor(s.world, s.defender)
	if b == nil {
		return nil, ErrDefeated
	}
	return b, nil
}

func (s *Simulation) TryPurchase(id string) error {
	b, err := s.buyer()
	if err != nil {
		return err
	}
	return s.ledger.TryPurchase(id, b)
}

func (s *Simulation) Purchase(id string) bool {
	return s.TryPurchase(id) == nil
}

// TryHire leases an ally for the next wave. Hiring is closed while a wave
// is running.
func (s *Simulation) TryHire(id string) error {
	if s.waves.Active() {
		return economy.ErrWaveActive
	}
	b, err := s.buyer()
	if err != nil {
		return err
	}
	return s.ledger.TryHire(id, b)
}

func (s *Simulation) Hire(id string) bool {
	return s.TryHire(id) == nil
}

func (s *Simulation) Reload() bool {
	if s.defeated {
		return false
	}
	return system.StartReload(s.world, s.defender)
}

func (s *Simulation) SetIntent(intent Intent) {
	d, ok := ecs.Get(s.world, s.defender, component.DefenderComponent.Kind())
	if !ok {
		return
	}
	d.Intent = intent
}

// Restart ends the run: it forgets waves, purchases and the saved
// defender, clears everything but the town and spawns a fresh defender.
func (s *Simulation) Restart() {
	s.waves.Reset()
	s.ledger.OnWaveEnd(s.world)
	s.ledger.Reset()
	system.ClearDefender(s.store)
	s.save.Forget()
	s.spawner.Reset()

	for _, e := range ecs.Entities(s.world) {
		if ecs.Has(s.world, e, component.ObstacleComponent.Kind()) {
			continue
		}
		ecs.DestroyEntity(s.world, e)
	}
	s.world.Timeline().Reset()
	s.defeated = false
	s.spawnDefender()
	log.Printf("sim: restarted")
}

// ApplyTuning swaps in new tuning between waves. Entities already in the
// world keep their stats; the next spawns use the new values.
func (s *Simulation) ApplyTuning(t *prefabs.Tuning) error {
	if t == nil {
		return fmt.Errorf("sim: tuning is nil")
	}
	if s.waves.Active() {
		return economy.ErrWaveActive
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("sim: tuning: %w", err)
	}
	prev := s.tuning
	s.tuning = t
	if err := s.wire(); err != nil {
		s.tuning = prev
		if rerr := s.wire(); rerr != nil {
			log.Printf("sim: restore tuning: %v", rerr)
		}
		return err
	}
	log.Printf("sim: applied tuning %q", t.Name)
	return nil
}

func (s *Simulation) OnKilled(fn func(ecs.Entity, component.Faction)) {
	if fn != nil {
		s.killedHandlers = append(s.killedHandlers, fn)
	}
}

func (s *Simulation) OnWaveCompleted(fn func(wave int)) {
	if fn != nil {
		s.completedHandlers = append(s.completedHandlers, fn)
	}
}

func (s *Simulation) OnDefeated(fn func()) {
	if fn != nil {
		s.defeatedHandlers = append(s.defeatedHandlers, fn)
	}
}

func (s *Simulation) World() *ecs.World            { return s.world }
func (s *Simulation) Defender() ecs.Entity         { return s.defender }
func (s *Simulation) Level() *levels.Level         { return s.level }
func (s *Simulation) Tuning() *prefabs.Tuning      { return s.tuning }
func (s *Simulation) Ledger() *economy.Ledger      { return s.ledger }
func (s *Simulation) Waves() *system.WaveScheduler { return s.waves }
func (s *Simulation) Damage() *system.Damage       { return s.damage }
func (s *Simulation) Defeated() bool               { return s.defeated }
