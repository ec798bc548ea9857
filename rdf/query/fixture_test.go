package query

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
)

const ex = "http://example.org/"

var (
	exA     = rdf.NewIRI(ex + "a")
	exB     = rdf.NewIRI(ex + "b")
	exC     = rdf.NewIRI(ex + "c")
	exD     = rdf.NewIRI(ex + "d")
	exClass = rdf.NewIRI(ex + "C")
	exNext  = rdf.NewIRI(ex + "next")
	exKnows = rdf.NewIRI(ex + "knows")
	rdfsLbl = rdf.NewIRI(rdf.NamespaceRDFS + "label")
)

func testNamespaces(t *testing.T) *rdf.Namespaces {
	t.Helper()
	ns := rdf.DefaultNamespaces()
	require.NoError(t, ns.Register("ex", ex))
	return ns
}

// testGraph holds a small typed chain: a -> b -> c along ex:next
func testGraph(t *testing.T) *graph.MemoryGraph {
	t.Helper()
	return graph.NewMemoryGraph(
		rdf.Triple{Subject: exA, Predicate: rdf.RDFType, Object: exClass},
		rdf.Triple{Subject: exB, Predicate: rdf.RDFType, Object: exClass},
		rdf.Triple{Subject: exA, Predicate: rdfsLbl, Object: rdf.String("A")},
		rdf.Triple{Subject: exA, Predicate: exNext, Object: exB},
		rdf.Triple{Subject: exB, Predicate: exNext, Object: exC},
	)
}

// cycleGraph links a -> b -> c -> a along ex:next
func cycleGraph(t *testing.T) *graph.MemoryGraph {
	t.Helper()
	return graph.NewMemoryGraph(
		rdf.Triple{Subject: exA, Predicate: exNext, Object: exB},
		rdf.Triple{Subject: exB, Predicate: exNext, Object: exC},
		rdf.Triple{Subject: exC, Predicate: exNext, Object: exA},
	)
}

func testEngine(t *testing.T, g graph.Graph) *Engine {
	t.Helper()
	return NewEngine(g, Options{Namespaces: testNamespaces(t)})
}

// recordingEngine collects annotation events into the returned slice
func recordingEngine(t *testing.T, g graph.Graph) (*Engine, *[]annotations.Event) {
	t.Helper()
	var events []annotations.Event
	e := NewEngine(g, Options{
		Namespaces: testNamespaces(t),
		Handler: func(ev annotations.Event) {
			events = append(events, ev)
		},
	})
	return e, &events
}

func eventNames(events []annotations.Event) []string {
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
	}
	return names
}

// countingGraph counts Find calls and open iterators. A non-nil closeErr
// is returned by every iterator Close.
type countingGraph struct {
	graph.Graph
	finds    int
	open     int
	closeErr error
}

func (g *countingGraph) Find(s, p, o rdf.Term) (graph.Iterator, error) {
	it, err := g.Graph.Find(s, p, o)
	if err != nil {
		return nil, err
	}
	g.finds++
	g.open++
	return &countingIterator{Iterator: it, g: g}, nil
}

type countingIterator struct {
	graph.Iterator
	g      *countingGraph
	closed bool
}

func (it *countingIterator) Close() error {
	if !it.closed {
		it.closed = true
		it.g.open--
	}
	if err := it.Iterator.Close(); err != nil {
		return err
	}
	return it.g.closeErr
}
