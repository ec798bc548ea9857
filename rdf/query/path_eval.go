package query

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
	"github.com/wbrown/janus-rdfquery/rdf/path"
)

// Evaluate returns the nodes reachable from subject under expr.
//
// Repetition walks an explicit worklist with a visited set, so evaluation
// terminates on cyclic graphs and never re-expands a node.
func Evaluate(g graph.Graph, subject rdf.Term, expr path.Expr) (*rdf.NodeSet, error) {
	if subject.IsZero() {
		return nil, fmt.Errorf("%w: path %v", ErrUnboundSubject, expr)
	}
	out := rdf.NewNodeSet()
	if err := addPathValues(g, subject, expr, out); err != nil {
		return nil, err
	}
	return out, nil
}

func addPathValues(g graph.Graph, subject rdf.Term, expr path.Expr, out *rdf.NodeSet) error {
	switch e := expr.(type) {
	case *path.Predicate:
		if e == nil || !e.IRI.IsIRI() {
			return malformed(expr)
		}
		return collect(g, subject, e.IRI, rdf.Term{}, out, objectOf)

	case *path.Sequence:
		if e == nil || len(e.Steps) == 0 {
			return malformed(expr)
		}
		frontier := rdf.NewNodeSet(subject)
		for _, step := range e.Steps {
			reached := rdf.NewNodeSet()
			for _, node := range frontier.ToSlice() {
				if err := addPathValues(g, node, step, reached); err != nil {
					return err
				}
			}
			frontier = reached
		}
		out.AddAll(frontier.ToSlice())
		return nil

	case *path.Alternative:
		if e == nil || len(e.Choices) == 0 {
			return malformed(expr)
		}
		for _, choice := range e.Choices {
			if err := addPathValues(g, subject, choice, out); err != nil {
				return err
			}
		}
		return nil

	case *path.Inverse:
		if e == nil || !e.IRI.IsIRI() {
			return fmt.Errorf("%w: inverse paths only work for IRIs", ErrUnsupportedPath)
		}
		return collect(g, rdf.Term{}, e.IRI, subject, out, subjectOf)

	case *path.ZeroOrOne:
		if e == nil || e.Path == nil {
			return malformed(expr)
		}
		if err := addPathValues(g, subject, e.Path, out); err != nil {
			return err
		}
		out.Add(subject)
		return nil

	case *path.ZeroOrMore:
		if e == nil || e.Path == nil {
			return malformed(expr)
		}
		if err := walkPath(g, subject, e.Path, out); err != nil {
			return err
		}
		out.Add(subject)
		return nil

	case *path.OneOrMore:
		if e == nil || e.Path == nil {
			return malformed(expr)
		}
		return walkPath(g, subject, e.Path, out)

	default:
		return malformed(expr)
	}
}

// walkPath adds every node reachable through one or more applications of
// expr, depth first. Each node is expanded at most once.
func walkPath(g graph.Graph, subject rdf.Term, expr path.Expr, out *rdf.NodeSet) error {
	visited := rdf.NewNodeSet()
	stack := []rdf.Term{subject}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Add(node) {
			continue
		}

		step := rdf.NewNodeSet()
		if err := addPathValues(g, node, expr, step); err != nil {
			return err
		}
		reached := step.ToSlice()
		out.AddAll(reached)

		// Push in reverse so the first reached node is expanded first
		for i := len(reached) - 1; i >= 0; i-- {
			if !visited.Contains(reached[i]) {
				stack = append(stack, reached[i])
			}
		}
	}
	return nil
}

func objectOf(t rdf.Triple) rdf.Term  { return t.Object }
func subjectOf(t rdf.Triple) rdf.Term { return t.Subject }

// collect adds one component of every triple matching (s, p, o)
func collect(g graph.Graph, s, p, o rdf.Term, out *rdf.NodeSet, pick func(rdf.Triple) rdf.Term) error {
	it, err := g.Find(s, p, o)
	if err != nil {
		return err
	}
	for it.Next() {
		out.Add(pick(it.Triple()))
	}
	err = it.Err()
	if cerr := it.Close(); err == nil {
		err = cerr
	}
	return err
}

func malformed(expr path.Expr) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedPath, expr)
}
