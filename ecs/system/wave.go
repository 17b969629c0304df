package system

import (
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
	"github.com/milk9111/zombietown/storage"
)

// WaveScheduler owns the wave counter. StartWave spawns the roster for the
// next wave; killed signals for hostiles count it down and the last one
// completes the wave.
type WaveScheduler struct {
	spec   prefabs.WaveSpec
	agents prefabs.AgentSpec
	roster Roster
	store  storage.Store
	rng    *rand.Rand

	arenaWidth  float64
	arenaHeight float64

	wave   int
	alive  int
	active bool
}

func NewWaveScheduler(spec prefabs.WaveSpec, agents prefabs.AgentSpec, roster Roster, store storage.Store, rng *rand.Rand, arenaWidth, arenaHeight float64) *WaveScheduler {
	if roster == nil {
		roster = FormulaRoster{Spec: spec}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	ws := &WaveScheduler{
		spec:        spec,
		agents:      agents,
		roster:      roster,
		store:       store,
		rng:         rng,
		arenaWidth:  arenaWidth,
		arenaHeight: arenaHeight,
	}
	if wave, ok := storage.LoadInt(store, storage.KeyCurrentWave); ok && wave > 0 {
		ws.wave = wave
	}
	return ws
}

func (ws *WaveScheduler) Wave() int      { return ws.wave }
func (ws *WaveScheduler) Alive() int     { return ws.alive }
func (ws *WaveScheduler) Active() bool   { return ws.active }
func (ws *WaveScheduler) Roster() Roster { return ws.roster }

// StartWave begins the next wave. It does nothing while a wave is running.
func (ws *WaveScheduler) StartWave(w *ecs.World) bool {
	if ws == nil || w == nil || ws.active {
		return false
	}
	ws.wave++
	ws.alive = ws.wave * ws.spec.AgentsPerWave
	ws.active = true

	for i := 0; i < ws.alive; i++ {
		stats := ws.roster.Roll(ws.wave, RosterRolls{ws.rng.Float64(), ws.rng.Float64(), ws.rng.Float64()})
		x, y := ws.spawnPoint()
		SpawnAgent(w, ws.agents, stats, x, y)
	}
	log.Printf("wave: start %d (%d agents)", ws.wave, ws.alive)
	return true
}

// spawnPoint picks a spot past the bottom edge. The band below the edge
// deepens with the wave number.
func (ws *WaveScheduler) spawnPoint() (float64, float64) {
	band := math.Min(ws.spec.BandBase+ws.spec.BandGrowth*float64(ws.wave), ws.spec.BandMax)
	if band < 0 {
		band = 0
	}
	x := ws.rng.Float64() * ws.arenaWidth
	y := ws.arenaHeight + ws.spec.EdgeOffset + ws.rng.Float64()*band
	return x, y
}

// OnKilled counts down the alive agents of the running wave.
func (ws *WaveScheduler) OnKilled(w *ecs.World, sig ecs.Signal) {
	if ws == nil || !ws.active || sig.Faction != component.FactionHostile {
		return
	}
	ws.alive--
	if ws.alive > 0 {
		return
	}
	ws.complete(w)
}

func (ws *WaveScheduler) complete(w *ecs.World) {
	ws.alive = 0
	ws.active = false
	if err := storage.SaveInt(ws.store, storage.KeyCurrentWave, ws.wave); err != nil {
		log.Printf("wave: save %d: %v", ws.wave, err)
	}
	log.Printf("wave: completed %d", ws.wave)
	w.Signals().Emit(ecs.Signal{Kind: ecs.SignalWaveCompleted, Wave: ws.wave})
}

// Reset returns to wave zero and forgets the persisted counter. Agents
// already in the world are left to the caller.
func (ws *WaveScheduler) Reset() {
	if ws == nil {
		return
	}
	ws.wave = 0
	ws.alive = 0
	ws.active = false
	if ws.store != nil {
		if err := ws.store.Delete(storage.KeyCurrentWave); err != nil {
			log.Printf("wave: clear: %v", err)
		}
	}
}
