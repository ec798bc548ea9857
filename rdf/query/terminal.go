package query

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// Terminal methods drive the pipeline and always close it before
// returning, on every exit path.

// finish closes the pipeline, keeping the first error
func (q *Query) finish(err *error) {
	if cerr := q.Close(); *err == nil {
		*err = cerr
	}
}

// Array materializes all solutions
func (q *Query) Array() (solutions []Solution, err error) {
	defer q.finish(&err)
	for {
		sol, ok, err := q.NextSolution()
		if err != nil {
			return nil, err
		}
		if !ok {
			return solutions, nil
		}
		solutions = append(solutions, sol)
	}
}

// Count returns the number of solutions. It materializes the result.
func (q *Query) Count() (int, error) {
	solutions, err := q.Array()
	return len(solutions), err
}

// NodeArray returns the variable's value from every solution that binds it
func (q *Query) NodeArray(variable string) (nodes []rdf.Term, err error) {
	defer q.finish(&err)
	name, err := ParseVariable(variable)
	if err != nil {
		return nil, err
	}
	err = q.each(func(sol Solution) error {
		if t, ok := sol.Get(name); ok {
			nodes = append(nodes, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// NodeSet returns the distinct values of the variable
func (q *Query) NodeSet(variable string) (*rdf.NodeSet, error) {
	set := rdf.NewNodeSet()
	if err := q.AddAllNodes(variable, set); err != nil {
		return nil, err
	}
	return set, nil
}

// AddAllNodes adds the variable's value from every solution to set
func (q *Query) AddAllNodes(variable string, set *rdf.NodeSet) error {
	return q.ForEachNode(variable, func(t rdf.Term) error {
		set.Add(t)
		return nil
	})
}

// ForEach calls fn for every solution. An error from fn stops the
// iteration and is returned.
func (q *Query) ForEach(fn func(Solution) error) (err error) {
	defer q.finish(&err)
	return q.each(fn)
}

// ForEachNode calls fn with the variable's value from every solution that binds it
func (q *Query) ForEachNode(variable string, fn func(rdf.Term) error) (err error) {
	defer q.finish(&err)
	name, err := ParseVariable(variable)
	if err != nil {
		return err
	}
	return q.each(func(sol Solution) error {
		if t, ok := sol.Get(name); ok {
			return fn(t)
		}
		return nil
	})
}

func (q *Query) each(fn func(Solution) error) error {
	for {
		sol, ok, err := q.NextSolution()
		if err != nil || !ok {
			return err
		}
		if err := fn(sol); err != nil {
			return err
		}
	}
}

// Node returns the variable's value in the first solution.
// It returns false if there is no solution or the variable is unbound.
func (q *Query) Node(variable string) (t rdf.Term, found bool, err error) {
	defer q.finish(&err)
	name, err := ParseVariable(variable)
	if err != nil {
		return rdf.Term{}, false, err
	}
	sol, ok, err := q.NextSolution()
	if err != nil || !ok {
		return rdf.Term{}, false, err
	}
	t, found = sol.Get(name)
	return t, found, nil
}

// HasSolution reports whether the pipeline produces any solution
func (q *Query) HasSolution() (found bool, err error) {
	defer q.finish(&err)
	_, found, err = q.NextSolution()
	return found, err
}

// Object looks up the object of the first triple matching subject and
// predicate, resolved against the first solution. Either may be a variable.
// It returns false if there is no solution or no matching triple.
func (q *Query) Object(subject, predicate any) (t rdf.Term, found bool, err error) {
	defer q.finish(&err)
	e := q.engine
	ss, err := e.slot(subject, subjectPosition)
	if err != nil {
		return rdf.Term{}, false, err
	}
	ps, err := e.predicateSlot(predicate)
	if err != nil {
		return rdf.Term{}, false, err
	}

	sol, ok, err := q.NextSolution()
	if err != nil || !ok {
		return rdf.Term{}, false, err
	}
	// Release the pipeline before the direct lookup
	if err := q.Close(); err != nil {
		return rdf.Term{}, false, err
	}

	s := ss.resolve(sol)
	if s.IsZero() {
		return rdf.Term{}, false, fmt.Errorf("%w: object lookup needs a value for %s", ErrUnboundSubject, ss)
	}
	p, err := resolvePredicate(ps, sol)
	if err != nil {
		return rdf.Term{}, false, err
	}
	if p.IsZero() {
		return rdf.Term{}, false, fmt.Errorf("%w: object lookup needs a value for %s", ErrUnboundPredicate, ps)
	}

	it, err := e.graph.Find(s, p, rdf.Term{})
	if err != nil {
		return rdf.Term{}, false, err
	}
	defer func() {
		if cerr := it.Close(); err == nil {
			err = cerr
		}
	}()
	if it.Next() {
		return it.Triple().Object, true, nil
	}
	return rdf.Term{}, false, it.Err()
}

// Construct instantiates a triple template for every solution. Each
// template position is a variable, a term or compact notation. Solutions
// leaving any position unbound are skipped. A predicate that is not an IRI
// fails with ErrTypeMismatch.
func (q *Query) Construct(subject, predicate, object any) (triples []rdf.Triple, err error) {
	defer q.finish(&err)
	e := q.engine
	ss, err := e.slot(subject, subjectPosition)
	if err != nil {
		return nil, err
	}
	ps, err := e.predicateSlot(predicate)
	if err != nil {
		return nil, err
	}
	obj, err := e.slot(object, objectPosition)
	if err != nil {
		return nil, err
	}

	err = q.each(func(sol Solution) error {
		p, err := resolvePredicate(ps, sol)
		if err != nil {
			return err
		}
		s, o := ss.resolve(sol), obj.resolve(sol)
		if s.IsZero() || p.IsZero() || o.IsZero() {
			return nil
		}
		t, err := rdf.NewTriple(s, p, o)
		if err != nil {
			return err
		}
		triples = append(triples, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return triples, nil
}

// Table renders all solutions as a markdown table. Without variables,
// columns are every bound variable in order of first appearance.
func (q *Query) Table(variables ...string) (table string, err error) {
	defer q.finish(&err)
	names := make([]string, 0, len(variables))
	for _, v := range variables {
		name, err := ParseVariable(v)
		if err != nil {
			return "", err
		}
		names = append(names, name)
	}

	solutions, err := q.Array()
	if err != nil {
		return "", err
	}
	return NewTableFormatter().FormatSolutions(names, solutions), nil
}
