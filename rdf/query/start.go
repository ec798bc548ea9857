package query

// startOp yields its seed solutions once each, in order
type startOp struct {
	seeds []Solution
	pos   int
}

func newStartOp(initial []Solution) *startOp {
	if len(initial) == 0 {
		return &startOp{seeds: []Solution{{}}}
	}
	seeds := make([]Solution, len(initial))
	copy(seeds, initial)
	return &startOp{seeds: seeds}
}

func (s *startOp) next() (Solution, bool, error) {
	if s.pos >= len(s.seeds) {
		return Solution{}, false, nil
	}
	sol := s.seeds[s.pos]
	s.pos++
	return sol, true, nil
}

func (s *startOp) close() error { return nil }
