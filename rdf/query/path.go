package query

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
	"github.com/wbrown/janus-rdfquery/rdf/path"
)

// pathOp evaluates a property path once per upstream solution
type pathOp struct {
	upstream *Query
	graph    graph.Graph
	ctx      Context
	s, o     slot
	expr     path.Expr

	input   Solution
	results []rdf.Term
	pos     int

	// Plain predicates stream from the graph instead of materializing
	predicate rdf.Term
	it        graph.Iterator
}

func newPathOp(q *Query, s any, expr path.Expr, o any) (*pathOp, error) {
	if expr == nil {
		return nil, fmt.Errorf("%w: nil path", ErrUnsupportedPath)
	}
	e := q.engine
	subj, err := e.slot(s, subjectPosition)
	if err != nil {
		return nil, err
	}
	obj, err := e.slot(o, objectPosition)
	if err != nil {
		return nil, err
	}

	op := &pathOp{
		upstream: q,
		graph:    e.graph,
		ctx:      e.ctx,
		s:        subj,
		o:        obj,
		expr:     expr,
	}
	if pred, ok := expr.(*path.Predicate); ok && pred != nil && pred.IRI.IsIRI() {
		op.predicate = pred.IRI
	}
	return op, nil
}

func (p *pathOp) description() string {
	return fmt.Sprintf("%s %s %s", p.s, p.expr, p.o)
}

func (p *pathOp) next() (Solution, bool, error) {
	for {
		if p.it != nil {
			for p.it.Next() {
				if sol, ok := p.o.extend(p.input, p.it.Triple().Object); ok {
					return sol, true, nil
				}
			}
			err := p.it.Err()
			if cerr := p.closeIterator(); err == nil {
				err = cerr
			}
			if err != nil {
				return Solution{}, false, fmt.Errorf("path %s: %w", p.expr, err)
			}
		}

		if p.pos < len(p.results) {
			node := p.results[p.pos]
			p.pos++
			return p.input.With(p.o.variable, node), true, nil
		}

		input, ok, err := p.upstream.NextSolution()
		if err != nil || !ok {
			return Solution{}, false, err
		}
		subject := p.s.resolve(input)
		if subject.IsZero() {
			return Solution{}, false, fmt.Errorf("%w: path %s needs a value for %s", ErrUnboundSubject, p.expr, p.s)
		}
		object := p.o.resolve(input)
		p.input = input
		p.results = nil
		p.pos = 0

		if !p.predicate.IsZero() && !object.IsZero() {
			// Bound object: a single lookup answers membership
			found, err := p.exists(subject, object)
			if err != nil {
				return Solution{}, false, err
			}
			if found {
				return input, true, nil
			}
			continue
		}
		if !p.predicate.IsZero() && p.o.isVariable() {
			it, err := p.graph.Find(subject, p.predicate, rdf.Term{})
			if err != nil {
				return Solution{}, false, fmt.Errorf("path %s: %w", p.expr, err)
			}
			p.it = it
			continue
		}

		nodes, err := p.ctx.EvaluatePath(p.expr, subject, func() (*rdf.NodeSet, error) {
			return Evaluate(p.graph, subject, p.expr)
		})
		if err != nil {
			return Solution{}, false, err
		}

		switch {
		case !object.IsZero():
			if nodes.Contains(object) {
				return input, true, nil
			}
		case p.o.isVariable():
			p.results = nodes.ToSlice()
		default:
			if nodes.Len() > 0 {
				return input, true, nil
			}
		}
	}
}

func (p *pathOp) exists(subject, object rdf.Term) (bool, error) {
	it, err := p.graph.Find(subject, p.predicate, object)
	if err != nil {
		return false, fmt.Errorf("path %s: %w", p.expr, err)
	}
	found := it.Next()
	err = it.Err()
	if cerr := it.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, fmt.Errorf("path %s: %w", p.expr, err)
	}
	return found, nil
}

func (p *pathOp) closeIterator() error {
	if p.it == nil {
		return nil
	}
	err := p.it.Close()
	p.it = nil
	return err
}

func (p *pathOp) close() error {
	p.results = nil
	return p.closeIterator()
}
