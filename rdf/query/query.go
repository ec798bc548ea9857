package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/wbrown/janus-rdfquery/rdf/path"
)

// operator is the evaluation state of one pipeline node
type operator interface {
	// next returns the next solution, or false at end of stream
	next() (Solution, bool, error)
	// close releases the operator's own resources; the node closes upstream
	close() error
}

// Query is one node of a pipeline.
//
// Builder methods return a new node whose upstream is q. A construction
// error (an invalid variable name, a non-IRI predicate constant) is kept by
// the node and returned by the first NextSolution or terminal call.
type Query struct {
	engine     *Engine
	upstream   *Query
	op         operator
	name       string
	err        error
	closed     bool
	downstream bool
	started    time.Time
	produced   int
}

// NextSolution pulls the next solution. It returns false at end of stream.
// Calling it after Close fails with ErrEvaluation.
func (q *Query) NextSolution() (Solution, bool, error) {
	if q.closed {
		return Solution{}, false, fmt.Errorf("%w: %s pulled after close", ErrEvaluation, q.name)
	}
	if q.err != nil {
		return Solution{}, false, q.err
	}
	if q.started.IsZero() {
		q.started = time.Now()
	}

	sol, ok, err := q.op.next()
	if err != nil {
		// Errors pass through every downstream node; report once at the sink
		if !q.downstream {
			q.engine.ctx.EvaluationFailed(q.Pipeline(), err)
		}
		return Solution{}, false, err
	}
	if ok {
		q.produced++
	}
	return sol, ok, nil
}

// Close releases the node's resources and closes its upstream.
// Closing an already closed query is a no-op.
func (q *Query) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true

	err := q.op.close()
	if q.upstream != nil {
		if upErr := q.upstream.Close(); err == nil {
			err = upErr
		}
	}
	if !q.downstream {
		q.engine.ctx.QueryClosed(q.Pipeline(), q.started, q.produced)
	}
	return err
}

// Closed reports whether Close has been called
func (q *Query) Closed() bool {
	return q.closed
}

// Err returns the construction error carried by the node, if any
func (q *Query) Err() error {
	return q.err
}

// Engine returns the engine the pipeline was built from
func (q *Query) Engine() *Engine {
	return q.engine
}

// Pipeline describes the chain from the seed to q, e.g.
// "Start → Match(?s <p> ?o) → Limit(3)"
func (q *Query) Pipeline() string {
	var names []string
	for n := q; n != nil; n = n.upstream {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " → ")
}

func (q *Query) String() string {
	return q.Pipeline()
}

// chain appends a node. An upstream construction error is carried forward
// so that operators which never pull (Limit(0)) still report it.
func (q *Query) chain(name string, op operator, err error) *Query {
	q.downstream = true
	if err == nil {
		err = q.err
	}
	return &Query{
		engine:   q.engine,
		upstream: q,
		op:       op,
		name:     name,
		err:      err,
	}
}

// Match joins every upstream solution with the triples matching the pattern.
//
// Each position is a variable ("?x" or a variable term), a bound rdf.Term,
// a compact-notation string ("ex:knows", "\"Alice\"@en", "42") or nil for a
// wildcard. "a" in predicate position means rdf:type. Variables already bound
// upstream are substituted before the graph lookup. A constant or resolved
// predicate that is not an IRI fails with ErrTypeMismatch.
func (q *Query) Match(s, p, o any) *Query {
	op, err := newMatchOp(q, s, p, o)
	if err != nil {
		return q.chain("Match", nopOp{}, err)
	}
	return q.chain("Match("+op.pattern+")", op, nil)
}

// Filter passes through the upstream solutions for which fn returns true
func (q *Query) Filter(fn FilterFunc) *Query {
	var err error
	if fn == nil {
		err = fmt.Errorf("%w: nil filter function", ErrEvaluation)
	}
	return q.chain("Filter", &filterOp{upstream: q, fn: fn}, err)
}

// Bind adds a binding computed by fn to every upstream solution.
// A zero term leaves the variable unbound. Binding a variable that already
// holds a different term fails with ErrAlreadyBound.
func (q *Query) Bind(variable string, fn BindFunc) *Query {
	name, err := ParseVariable(variable)
	if err == nil && fn == nil {
		err = fmt.Errorf("%w: nil bind function", ErrEvaluation)
	}
	return q.chain("Bind(?"+name+")", &bindOp{upstream: q, variable: name, fn: fn}, err)
}

// Limit passes through at most n solutions, then closes the upstream.
// A negative n is treated as zero.
func (q *Query) Limit(n int) *Query {
	if n < 0 {
		n = 0
	}
	return q.chain(fmt.Sprintf("Limit(%d)", n), &limitOp{upstream: q, ctx: q.engine.ctx, limit: n, remaining: n}, nil)
}

// OrderBy materializes the upstream and replays it sorted by the
// variable's term under rdf.CompareTerms. The sort is stable.
func (q *Query) OrderBy(variable string) *Query {
	name, err := ParseVariable(variable)
	return q.chain("OrderBy(?"+name+")", &orderByOp{upstream: q, ctx: q.engine.ctx, variable: name}, err)
}

// Distinct drops solutions whose bindings were already produced
func (q *Query) Distinct() *Query {
	return q.chain("Distinct", &distinctOp{upstream: q, seen: make(map[string]struct{})}, nil)
}

// Path evaluates a property path from s once per upstream solution.
//
// If o is an unbound variable, one solution per reachable node is produced.
// If o is bound, the upstream solution passes iff o is reachable. A nil o
// passes the upstream solution iff any node is reachable. A subject that
// resolves to no value fails with ErrUnboundSubject. A plain predicate path
// streams graph matches like Match instead of materializing them.
func (q *Query) Path(s any, expr path.Expr, o any) *Query {
	op, err := newPathOp(q, s, expr, o)
	if err != nil {
		return q.chain("Path", nopOp{}, err)
	}
	return q.chain("Path("+op.description()+")", op, nil)
}

// PathString parses a textual property path with the engine's namespaces
// and chains a Path node
func (q *Query) PathString(s any, expr string, o any) *Query {
	parsed, err := path.Parse(expr, q.engine.ns)
	if err != nil {
		return q.chain("Path", nopOp{}, err)
	}
	return q.Path(s, parsed, o)
}

// nopOp stands in for an operator that failed to construct
type nopOp struct{}

func (nopOp) next() (Solution, bool, error) { return Solution{}, false, nil }
func (nopOp) close() error                  { return nil }
