// Command wavesim plays the simulation headless with an auto-aiming
// defender and logs how far it gets. Use it to check tuning changes.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
	"github.com/milk9111/zombietown/sim"
	"github.com/milk9111/zombietown/storage"
)

const step = time.Second / 60

func main() {
	waves := flag.Int("waves", 10, "number of waves to play")
	seed := flag.Int64("seed", 1, "random seed")
	storePath := flag.String("store", "", "save file path (default: in memory)")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory with tuning overrides")
	limit := flag.Duration("limit", 5*time.Minute, "simulated time limit per wave")
	flag.Parse()

	prefabs.Dir = *prefabsDir
	tuning, err := prefabs.LoadTuning(prefabs.GameFile)
	if err != nil {
		log.Fatal(err)
	}

	var store storage.Store = storage.NewMemoryStore()
	if *storePath != "" {
		fs, err := storage.OpenFileStore(*storePath)
		if err != nil {
			log.Fatal(err)
		}
		store = fs
	}

	s, err := sim.New(sim.Options{Tuning: tuning, Store: store, Rand: rand.New(rand.NewSource(*seed))})
	if err != nil {
		log.Fatal(err)
	}

	kills := 0
	s.OnKilled(func(_ ecs.Entity, f component.Faction) {
		if f == component.FactionHostile {
			kills++
		}
	})

	for i := 0; i < *waves; i++ {
		shop(s)
		if !s.StartWave() {
			log.Printf("wavesim: could not start wave")
			break
		}
		wave := s.Snapshot().Wave
		start := kills

		var elapsed time.Duration
		for s.Snapshot().WaveActive && !s.Defeated() && elapsed < *limit {
			s.SetIntent(autoAim(s.Snapshot()))
			s.Tick(step)
			elapsed += step
		}

		snap := s.Snapshot()
		log.Printf("wavesim: wave %d  kills %d  time %s  hp %d/%d  tokens %d  ammo %d+%d",
			wave, kills-start, elapsed.Round(time.Millisecond), snap.Health, snap.MaxHealth, snap.Currency, snap.Ammo, snap.Reserve)

		if s.Defeated() {
			log.Printf("wavesim: defeated on wave %d", wave)
			return
		}
		if snap.WaveActive {
			log.Printf("wavesim: wave %d hit the %s limit with %d agents left", wave, *limit, snap.Remaining)
			return
		}
	}
	log.Printf("wavesim: survived %d waves, %d kills", *waves, kills)
}

// autoAim faces the nearest live agent and fires. It reloads once the
// magazine is empty.
func autoAim(snap sim.Snapshot) sim.Intent {
	var me, target *sim.Drawable
	best := math.Inf(1)
	for i := range snap.Drawables {
		d := &snap.Drawables[i]
		if d.Kind == sim.DrawDefender {
			me = d
		}
	}
	if me == nil {
		return sim.Intent{}
	}
	for i := range snap.Drawables {
		d := &snap.Drawables[i]
		if d.Kind != sim.DrawAgent || d.Dead {
			continue
		}
		if dist := math.Hypot(d.X-me.X, d.Y-me.Y); dist < best {
			best = dist
			target = d
		}
	}
	if target == nil {
		return sim.Intent{}
	}
	return sim.Intent{
		AimX:   target.X,
		AimY:   target.Y,
		Aiming: true,
		Fire:   true,
		Reload: snap.Ammo == 0 && !snap.Reloading,
	}
}

// shop spends tokens between waves: ammo when low, bandages when hurt,
// then unlocks and hires.
func shop(s *sim.Simulation) {
	for _, item := range s.Snapshot().Items {
		snap := s.Snapshot()
		switch {
		case item.ID == "ammo_box" && snap.Reserve < snap.Magazine*2:
			s.Purchase(item.ID)
		case item.ID == "bandage" && snap.Health < snap.MaxHealth/2:
			s.Purchase(item.ID)
		case item.OneTime && !item.Purchased:
			s.Purchase(item.ID)
		}
	}
	for _, item := range s.Snapshot().Items {
		if item.Hire && item.CanHire {
			s.Hire(item.ID)
		}
	}
}
