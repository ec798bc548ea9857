// Package query implements a lazy, pull-based query pipeline over a triple graph.
//
// A pipeline is a chain of operators built from a seed:
//
//	q := engine.Query().
//		Match("?s", "rdf:type", "ex:Person").
//		Match("?s", "ex:name", "?name").
//		OrderBy("?name").
//		Limit(10)
//	names, err := q.NodeArray("?name")
//
// Each operator holds exactly one upstream and pulls from it on demand.
// Nothing is evaluated until NextSolution or a terminal method is called,
// and join order is exactly chain order. Terminal methods always close the
// whole chain before returning.
//
// A pipeline must be driven by one caller at a time. Independent pipelines
// may read the same graph concurrently.
package query

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
)

// Engine holds what every pipeline over one graph shares: the graph,
// the namespace registry and the annotation context.
type Engine struct {
	graph graph.Graph
	ns    *rdf.Namespaces
	ctx   Context
}

// NewEngine creates an engine reading from g
func NewEngine(g graph.Graph, opts Options) *Engine {
	ns := opts.Namespaces
	if ns == nil {
		ns = rdf.DefaultNamespaces()
	}

	handler := opts.Handler
	if handler == nil && opts.Trace {
		handler = annotations.ConsoleHandler()
	}

	return &Engine{
		graph: g,
		ns:    ns,
		ctx:   NewContext(handler),
	}
}

// Start creates a pipeline over g with default options
func Start(g graph.Graph, initial ...Solution) *Query {
	return NewEngine(g, Options{}).Query(initial...)
}

// Query starts a new pipeline. Without initial solutions the pipeline is
// seeded with a single empty solution; otherwise each initial solution is
// yielded once, in order.
func (e *Engine) Query(initial ...Solution) *Query {
	q := &Query{
		engine: e,
		name:   "Start",
		op:     newStartOp(initial),
	}
	if e.graph == nil {
		q.err = fmt.Errorf("%w: engine has no graph", ErrEvaluation)
	}
	return q
}

// Graph returns the graph pipelines read from
func (e *Engine) Graph() graph.Graph {
	return e.graph
}

// Namespaces returns the registry used to resolve compact notation
func (e *Engine) Namespaces() *rdf.Namespaces {
	return e.ns
}

// Context returns the annotation context
func (e *Engine) Context() Context {
	return e.ctx
}
