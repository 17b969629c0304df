package ecs

import "github.com/milk9111/zombietown/ecs/component"

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e, detaches it from the physics
// space and cancels its pending timeline events.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	if w.physicsWorld != nil {
		w.physicsWorld.RemoveEntity(e)
	}
	w.timeline.Cancel(e)
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// ForEach visits every entity carrying kind. Entities destroyed by an
// earlier callback are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.Entities() {
		if value, ok := s.Get(e).(*T); ok && value != nil {
			fn(e, value)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	if sb.Len() < sa.Len() {
		for _, e := range sb.Entities() {
			a, okA := sa.Get(e).(*A)
			b, okB := sb.Get(e).(*B)
			if okA && okB && a != nil && b != nil {
				fn(e, a, b)
			}
		}
		return
	}
	for _, e := range sa.Entities() {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB && a != nil && b != nil {
			fn(e, a, b)
		}
	}
}

// First returns the lowest-slot entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}

func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return w.store(kind.ID(), false).Len()
}
