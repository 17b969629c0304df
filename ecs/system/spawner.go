package system

import (
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
)

type restockTimer struct {
	kind    component.PickupKind
	spec    prefabs.PickupTimeSpec
	elapsed time.Duration
}

// AmbientSpawnerSystem drops ammo and health pickups on fixed intervals
// while a wave is running. A drop that finds no free spot is skipped.
type AmbientSpawnerSystem struct {
	spec   prefabs.SpawnerSpec
	center cp.Vector
	rng    *rand.Rand
	active func() bool
	timers []*restockTimer
}

func NewAmbientSpawnerSystem(spec prefabs.SpawnerSpec, center cp.Vector, rng *rand.Rand, active func() bool) *AmbientSpawnerSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &AmbientSpawnerSystem{
		spec:   spec,
		center: center,
		rng:    rng,
		active: active,
		timers: []*restockTimer{
			{kind: component.PickupAmmo, spec: spec.Ammo},
			{kind: component.PickupHealth, spec: spec.Health},
		},
	}
}

func (s *AmbientSpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.active != nil && !s.active() {
		return
	}
	for _, timer := range s.timers {
		if timer.spec.Interval <= 0 {
			continue
		}
		timer.elapsed += w.Delta()
		if timer.elapsed < timer.spec.Interval {
			continue
		}
		timer.elapsed = 0
		s.Drop(w, timer.kind, timer.spec)
	}
}

// Reset zeroes the restock timers.
func (s *AmbientSpawnerSystem) Reset() {
	if s == nil {
		return
	}
	for _, timer := range s.timers {
		timer.elapsed = 0
	}
}

// Drop tries up to spec.Attempts random spots around the center and places
// the pickup at the first one whose footprint is clear.
func (s *AmbientSpawnerSystem) Drop(w *ecs.World, kind component.PickupKind, spec prefabs.PickupTimeSpec) (ecs.Entity, bool) {
	for i := 0; i < s.spec.Attempts; i++ {
		x := s.center.X + (s.rng.Float64()*2-1)*s.spec.RegionHalfExtent
		y := s.center.Y + (s.rng.Float64()*2-1)*s.spec.RegionHalfExtent
		if !PlacementClear(w, cp.Vector{X: x, Y: y}, spec.Width, spec.Height) {
			continue
		}
		return SpawnPickup(w, kind, spec, x, y), true
	}
	return 0, false
}

// PlacementClear reports whether a width x height footprint centered on at
// touches no obstacle, structure or the defender.
func PlacementClear(w *ecs.World, at cp.Vector, width, height float64) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return true
	}
	bb := cp.NewBBForExtents(at, width/2, height/2)
	return len(pw.Overlapping(bb, component.MaskOf(component.FactionEnvironment, component.FactionPlayer))) == 0
}
