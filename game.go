package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/zombietown/economy"
	"github.com/milk9111/zombietown/prefabs"
	"github.com/milk9111/zombietown/sim"
)

type Game struct {
	frames int

	sim     *sim.Simulation
	input   *Input
	watcher *prefabs.Watcher

	tuningFile    string
	tuningPending bool
	debug         bool

	message      string
	messageUntil int
}

func NewGame(s *sim.Simulation, watcher *prefabs.Watcher, tuningFile string, debug bool) *Game {
	g := &Game{
		sim:        s,
		input:      &Input{},
		watcher:    watcher,
		tuningFile: tuningFile,
		debug:      debug,
	}
	s.OnWaveCompleted(func(wave int) {
		g.flash("wave %d cleared", wave)
	})
	s.OnDefeated(func() {
		g.flash("you died - press Enter")
	})
	return g
}

func (g *Game) flash(format string, args ...any) {
	g.message = fmt.Sprintf(format, args...)
	g.messageUntil = g.frames + 2*ebiten.TPS()
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()
	g.pollTuning()

	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.StartPressed {
		switch {
		case g.sim.Defeated():
			g.sim.Restart()
		case g.sim.StartWave():
			g.flash("wave %d", g.sim.Waves().Wave())
		}
	}
	if slot := g.input.ShopSlot; slot > 0 {
		items := g.sim.Ledger().Catalog().Items()
		if slot <= len(items) {
			g.report(items[slot-1].Name, g.sim.TryPurchase(items[slot-1].ID))
		}
	}
	if g.input.HirePressed {
		for _, item := range g.sim.Ledger().Catalog().Items() {
			if item.IsHire() {
				g.report("hire "+item.Name, g.sim.TryHire(item.ID))
				break
			}
		}
	}

	g.sim.SetIntent(g.input.Intent())
	g.sim.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) report(what string, err error) {
	switch {
	case err == nil:
		g.flash("bought %s", what)
	case errors.Is(err, economy.ErrInsufficientFunds):
		g.flash("%s: not enough tokens", what)
	case errors.Is(err, economy.ErrWaveActive):
		g.flash("%s: wait for the wave to end", what)
	default:
		g.flash("%s: unavailable", what)
	}
}

// pollTuning drains watcher events and applies edited tuning once no wave
// is running.
func (g *Game) pollTuning() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("tuning: %s %s changed", change.Kind, change.Path)
			g.tuningPending = true
			continue
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("tuning: watcher: %v", err)
			}
			continue
		default:
		}
		break
	}

	if !g.tuningPending || g.sim.Waves().Active() {
		return
	}
	g.tuningPending = false
	tuning, err := prefabs.LoadTuning(g.tuningFile)
	if err != nil {
		log.Printf("tuning: %v", err)
		return
	}
	if err := g.sim.ApplyTuning(tuning); err != nil {
		log.Printf("tuning: %v", err)
		return
	}
	g.flash("tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	drawArena(screen, snap)
	if g.debug {
		drawPhysics(screen, g.sim.World().PhysicsWorld())
	}
	drawHUD(screen, snap, g.message, g.frames < g.messageUntil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sim.Level().Width, g.sim.Level().Height
}
