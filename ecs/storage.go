package ecs

// entityStore tracks slot generations and free slots. Slots start at 1.
type entityStore struct {
	gen  []generation
	free []entityIndex
}

func (s *entityStore) create() EntityID {
	var idx entityIndex
	if len(s.free) > 0 {
		idx = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gen = append(s.gen, 0)
		idx = entityIndex(len(s.gen))
	}
	return makeEntityID(idx, s.gen[idx-1])
}

func (s *entityStore) destroy(e EntityID) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.index()
	s.gen[idx-1]++
	s.free = append(s.free, idx)
	return true
}

func (s *entityStore) isAlive(e EntityID) bool {
	idx := e.index()
	if idx == 0 || int(idx) > len(s.gen) {
		return false
	}
	return s.gen[idx-1] == e.generation()
}
