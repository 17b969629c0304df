package ecs

// SparseSet is a cache-friendly storage for components keyed by entity id.
// It holds the owning Entity next to each value so stale generations can be
// rejected.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

// Has returns true if the entity exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	if s == nil {
		return false
	}
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	return s.denseValues[s.sparse[int(e.id())-1]]
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == e.id() {
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	id := int(e.id())
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = lastEntity
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[int(lastEntity.id())-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

// Len reports how many components are stored.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns a copy of the dense entity list, safe to iterate while
// the set is mutated.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return append([]Entity(nil), s.denseEntities...)
}
