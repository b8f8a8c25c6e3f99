package ecs

// SparseSet stores the components of one identifier keyed by entity slot.
type SparseSet struct {
	denseSlots  []entityIndex
	denseValues []Component
	sparse      []int
}

// Has reports whether slot holds a component.
func (s *SparseSet) Has(slot entityIndex) bool {
	if s == nil || slot == 0 || int(slot)-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[slot-1]
	return idx >= 0 && idx < len(s.denseSlots) && s.denseSlots[idx] == slot
}

// Get returns the component for slot, or nil.
func (s *SparseSet) Get(slot entityIndex) Component {
	if !s.Has(slot) {
		return nil
	}
	return s.denseValues[s.sparse[slot-1]]
}

// Set inserts or replaces the component for slot.
func (s *SparseSet) Set(slot entityIndex, c Component) {
	if s == nil || slot == 0 {
		return
	}
	for int(slot)-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(slot) {
		s.denseValues[s.sparse[slot-1]] = c
		return
	}
	s.denseSlots = append(s.denseSlots, slot)
	s.denseValues = append(s.denseValues, c)
	s.sparse[slot-1] = len(s.denseSlots) - 1
}

// Remove deletes the component for slot if present. Dense order is not
// preserved, so update order never comes from here.
func (s *SparseSet) Remove(slot entityIndex) {
	if s == nil || !s.Has(slot) {
		return
	}
	idx := s.sparse[slot-1]
	last := len(s.denseSlots) - 1
	lastSlot := s.denseSlots[last]

	s.denseSlots[idx] = s.denseSlots[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastSlot-1] = idx

	s.denseSlots = s.denseSlots[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[slot-1] = -1
}

// Len is the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseSlots)
}
