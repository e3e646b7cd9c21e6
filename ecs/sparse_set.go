package ecs

// SparseSet stores one component type keyed by entity slot id. Values are
// packed densely so iteration touches only present components; removal swaps
// the last element into the hole, so dense order is not insertion order.
type SparseSet struct {
	ids    []int
	values []any
	index  []int // slot id-1 -> dense position, -1 when absent
}

func (s *SparseSet) Has(id int) bool {
	if s == nil || id <= 0 || id > len(s.index) {
		return false
	}
	i := s.index[id-1]
	return i >= 0 && i < len(s.ids) && s.ids[i] == id
}

// Get returns the value stored for id, or nil.
func (s *SparseSet) Get(id int) any {
	if !s.Has(id) {
		return nil
	}
	return s.values[s.index[id-1]]
}

// Set inserts or replaces the value for id.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	for len(s.index) < id {
		s.index = append(s.index, -1)
	}
	if s.Has(id) {
		s.values[s.index[id-1]] = v
		return
	}
	s.index[id-1] = len(s.ids)
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
}

// Remove deletes id and reports whether it was present.
func (s *SparseSet) Remove(id int) bool {
	if s == nil || !s.Has(id) {
		return false
	}
	i := s.index[id-1]
	last := len(s.ids) - 1
	moved := s.ids[last]

	s.ids[i] = moved
	s.values[i] = s.values[last]
	s.index[moved-1] = i

	s.ids = s.ids[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.index[id-1] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Entities returns the dense id list. Callers must not modify it.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.ids
}

// Values returns the dense value list, parallel to Entities.
func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.values
}
