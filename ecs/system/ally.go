package system

import (
	"math"

	"github.com/jakecoffman/cp"
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/prefabs"
)

// gunslinger is the blackboard one ally's tree reads and writes.
type gunslinger struct {
	w      *ecs.World
	e      ecs.Entity
	ally   *component.Ally
	pos    cp.Vector
	target ecs.Entity
	aim    cp.Vector
}

// AllySystem drives hired helpers with a small behavior tree:
//
//	selector
//	  sequence: acquire target, cooldown ready, fire
//	  idle
type AllySystem struct {
	spec       prefabs.AllySpec
	projectile prefabs.ProjectileSpec

	boards map[ecs.Entity]*gunslinger
	trees  map[ecs.Entity]bt.Node
}

func NewAllySystem(spec prefabs.AllySpec, projectile prefabs.ProjectileSpec) *AllySystem {
	return &AllySystem{
		spec:       spec,
		projectile: projectile,
		boards:     make(map[ecs.Entity]*gunslinger),
		trees:      make(map[ecs.Entity]bt.Node),
	}
}

func (s *AllySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.trees {
		if !ecs.IsAlive(w, e) {
			delete(s.trees, e)
			delete(s.boards, e)
		}
	}

	ecs.ForEach2(w, component.AllyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ally *component.Ally, t *component.Transform) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			setVelocity(w, e, cp.Vector{})
			return
		}
		board, ok := s.boards[e]
		if !ok {
			board = &gunslinger{}
			s.boards[e] = board
			s.trees[e] = s.tree(board)
		}
		board.w = w
		board.e = e
		board.ally = ally
		board.pos = cp.Vector{X: t.X, Y: t.Y}
		board.target = 0

		if _, err := s.trees[e].Tick(); err != nil {
			setVelocity(w, e, cp.Vector{})
		}
	})
}

func (s *AllySystem) tree(g *gunslinger) bt.Node {
	return bt.New(
		bt.Selector,
		bt.New(
			bt.Sequence,
			bt.New(func(children []bt.Node) (bt.Status, error) {
				if s.acquire(g) {
					return bt.Success, nil
				}
				return bt.Failure, nil
			}),
			bt.New(func(children []bt.Node) (bt.Status, error) {
				if g.w.Now() >= g.ally.NextShot {
					return bt.Success, nil
				}
				return bt.Failure, nil
			}),
			bt.New(func(children []bt.Node) (bt.Status, error) {
				s.fire(g)
				return bt.Success, nil
			}),
		),
		bt.New(func(children []bt.Node) (bt.Status, error) {
			setVelocity(g.w, g.e, cp.Vector{})
			return bt.Success, nil
		}),
	)
}

// acquire picks the nearest live hostile within range.
func (s *AllySystem) acquire(g *gunslinger) bool {
	best := math.Inf(1)
	found := false
	ecs.ForEach2(g.w, component.HostileComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.Hostile, h *component.Health) {
		if h.Dead || h.Current <= 0 {
			return
		}
		pos, ok := position(g.w, e)
		if !ok {
			return
		}
		d := pos.Distance(g.pos)
		if d > g.ally.Range || d >= best {
			return
		}
		best = d
		g.target = e
		g.aim = pos
		found = true
	})
	return found
}

func (s *AllySystem) fire(g *gunslinger) {
	w := g.w
	dir := g.aim.Sub(g.pos)
	if dir.LengthSq() == 0 {
		return
	}
	angle := dir.ToAngle()
	if t, ok := ecs.Get(w, g.e, component.TransformComponent.Kind()); ok {
		t.Rotation = angle
	}
	setVelocity(w, g.e, cp.Vector{})

	SpawnProjectile(w, s.projectile, component.FactionAlly, g.pos.X, g.pos.Y, angle)
	g.ally.NextShot = w.Now() + g.ally.Cooldown

	if dialog, ok := ecs.Get(w, g.e, component.DialogComponent.Kind()); ok {
		dialog.Visible = true
		w.Timeline().CancelKind(g.e, ecs.TimelineDialogTimeout)
		w.Timeline().Schedule(w.Now()+s.spec.DialogDuration, ecs.TimelineDialogTimeout, g.e)
	}
}

// HideDialog closes the speech bubble of e.
func HideDialog(w *ecs.World, e ecs.Entity) {
	if dialog, ok := ecs.Get(w, e, component.DialogComponent.Kind()); ok {
		dialog.Visible = false
	}
}
