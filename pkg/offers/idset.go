package offers

// IDSet is an ordered, duplicate-free collection of catalog offer identifiers.
// The zero value is an empty set ready to use.
type IDSet struct {
	order []string
	index map[string]struct{}
}

// NewIDSet builds a set from ids, keeping the first occurrence of each.
func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{}
	s.Add(ids...)
	return s
}

// Add appends ids not already present. It reports how many were new.
func (s *IDSet) Add(ids ...string) int {
	if s.index == nil {
		s.index = make(map[string]struct{}, len(ids))
	}
	added := 0
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.order = append(s.order, id)
		added++
	}
	return added
}

// Contains reports whether id is in the set.
func (s *IDSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of identifiers.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// List returns a copy of the identifiers in insertion order.
func (s *IDSet) List() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Without returns a new set holding the identifiers not in exclude, in order.
func (s *IDSet) Without(exclude map[string]struct{}) *IDSet {
	out := &IDSet{index: make(map[string]struct{})}
	if s == nil {
		return out
	}
	for _, id := range s.order {
		if _, skip := exclude[id]; skip {
			continue
		}
		out.index[id] = struct{}{}
		out.order = append(out.order, id)
	}
	return out
}
