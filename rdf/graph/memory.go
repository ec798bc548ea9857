package graph

import (
	"sync"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// MemoryGraph is an in-memory triple store with per-position indices.
// Find results follow insertion order, so query results are deterministic.
// Reads may run concurrently with each other and with writes; iterators
// see the graph as it was when Find was called.
type MemoryGraph struct {
	mu          sync.RWMutex
	triples     []rdf.Triple
	present     map[rdf.Triple]struct{}
	bySubject   map[rdf.Term][]int
	byPredicate map[rdf.Term][]int
	byObject    map[rdf.Term][]int
}

// NewMemoryGraph creates a graph holding the given triples
func NewMemoryGraph(triples ...rdf.Triple) *MemoryGraph {
	g := &MemoryGraph{}
	g.reset()
	for _, t := range triples {
		g.add(t)
	}
	return g
}

func (g *MemoryGraph) reset() {
	g.triples = nil
	g.present = make(map[rdf.Triple]struct{})
	g.bySubject = make(map[rdf.Term][]int)
	g.byPredicate = make(map[rdf.Term][]int)
	g.byObject = make(map[rdf.Term][]int)
}

// Add inserts triples; duplicates are ignored
func (g *MemoryGraph) Add(triples ...rdf.Triple) error {
	for _, t := range triples {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range triples {
		g.add(t)
	}
	return nil
}

func (g *MemoryGraph) add(t rdf.Triple) {
	if _, ok := g.present[t]; ok {
		return
	}
	idx := len(g.triples)
	g.triples = append(g.triples, t)
	g.present[t] = struct{}{}
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], idx)
	g.byPredicate[t.Predicate] = append(g.byPredicate[t.Predicate], idx)
	g.byObject[t.Object] = append(g.byObject[t.Object], idx)
}

// Remove deletes triples and rebuilds the indices
func (g *MemoryGraph) Remove(triples ...rdf.Triple) {
	g.mu.Lock()
	defer g.mu.Unlock()

	drop := make(map[rdf.Triple]struct{}, len(triples))
	for _, t := range triples {
		drop[t] = struct{}{}
	}
	old := g.triples
	g.reset()
	for _, t := range old {
		if _, ok := drop[t]; !ok {
			g.add(t)
		}
	}
}

// Len returns the number of triples
func (g *MemoryGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Clear removes all triples
func (g *MemoryGraph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// Find returns the triples matching the pattern
func (g *MemoryGraph) Find(s, p, o rdf.Term) (Iterator, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Pick the most selective bound position
	var candidates []int
	indexed := false
	for _, probe := range []struct {
		term  rdf.Term
		index map[rdf.Term][]int
	}{
		{s, g.bySubject},
		{p, g.byPredicate},
		{o, g.byObject},
	} {
		if probe.term.IsZero() {
			continue
		}
		list := probe.index[probe.term]
		if !indexed || len(list) < len(candidates) {
			candidates = list
			indexed = true
		}
	}

	return &memoryIterator{
		triples:    g.triples,
		candidates: candidates,
		scanAll:    !indexed,
		s:          s,
		p:          p,
		o:          o,
		pos:        -1,
	}, nil
}

// memoryIterator walks a snapshot of the graph
type memoryIterator struct {
	triples    []rdf.Triple
	candidates []int
	scanAll    bool
	s, p, o    rdf.Term
	pos        int
	current    rdf.Triple
	closed     bool
}

func (it *memoryIterator) Next() bool {
	if it.closed {
		return false
	}
	limit := len(it.candidates)
	if it.scanAll {
		limit = len(it.triples)
	}
	for it.pos+1 < limit {
		it.pos++
		idx := it.pos
		if !it.scanAll {
			idx = it.candidates[it.pos]
		}
		t := it.triples[idx]
		if Matches(t, it.s, it.p, it.o) {
			it.current = t
			return true
		}
	}
	return false
}

func (it *memoryIterator) Triple() rdf.Triple { return it.current }

func (it *memoryIterator) Err() error { return nil }

func (it *memoryIterator) Close() error {
	it.closed = true
	it.triples = nil
	it.candidates = nil
	return nil
}
