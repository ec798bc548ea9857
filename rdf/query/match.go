package query

import (
	"fmt"
	"time"

	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
)

// matchOp is a nested-loop join of upstream solutions (outer) with graph
// matches of the pattern (inner)
type matchOp struct {
	upstream *Query
	graph    graph.Graph
	ctx      Context
	s, p, o  slot
	pattern  string

	input   Solution
	it      graph.Iterator
	opened  time.Time
	matches int
}

func newMatchOp(q *Query, s, p, o any) (*matchOp, error) {
	e := q.engine
	subj, err := e.slot(s, subjectPosition)
	if err != nil {
		return nil, err
	}
	pred, err := e.predicateSlot(p)
	if err != nil {
		return nil, err
	}
	obj, err := e.slot(o, objectPosition)
	if err != nil {
		return nil, err
	}

	return &matchOp{
		upstream: q,
		graph:    e.graph,
		ctx:      e.ctx,
		s:        subj,
		p:        pred,
		o:        obj,
		pattern:  fmt.Sprintf("%s %s %s", subj, pred, obj),
	}, nil
}

func (m *matchOp) next() (Solution, bool, error) {
	for {
		if m.it != nil {
			for m.it.Next() {
				if sol, ok := m.extend(m.it.Triple()); ok {
					m.matches++
					return sol, true, nil
				}
			}
			err := m.it.Err()
			if cerr := m.closeIterator(); err == nil {
				err = cerr
			}
			if err != nil {
				return Solution{}, false, fmt.Errorf("match %s: %w", m.pattern, err)
			}
			m.ctx.MatchExhausted(m.pattern, m.opened, m.matches)
		}

		input, ok, err := m.upstream.NextSolution()
		if err != nil || !ok {
			return Solution{}, false, err
		}

		p, err := resolvePredicate(m.p, input)
		if err != nil {
			return Solution{}, false, err
		}
		it, err := m.graph.Find(m.s.resolve(input), p, m.o.resolve(input))
		if err != nil {
			return Solution{}, false, fmt.Errorf("match %s: %w", m.pattern, err)
		}

		m.input = input
		m.it = it
		m.matches = 0
		m.opened = m.ctx.MatchOpened(m.pattern)
	}
}

// extend binds the pattern's unbound variables to the triple's terms.
// A variable repeated within the pattern must match the same term.
func (m *matchOp) extend(t rdf.Triple) (Solution, bool) {
	sol, ok := m.s.extend(m.input, t.Subject)
	if !ok {
		return sol, false
	}
	if sol, ok = m.p.extend(sol, t.Predicate); !ok {
		return sol, false
	}
	return m.o.extend(sol, t.Object)
}

func (m *matchOp) closeIterator() error {
	if m.it == nil {
		return nil
	}
	err := m.it.Close()
	m.it = nil
	return err
}

func (m *matchOp) close() error {
	return m.closeIterator()
}
