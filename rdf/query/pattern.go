package query

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// position names a triple pattern slot in error messages
type position string

const (
	subjectPosition   position = "subject"
	predicatePosition position = "predicate"
	objectPosition    position = "object"
)

// slot is one resolved pattern argument: a variable, a constant term,
// or a wildcard when both are empty
type slot struct {
	variable string
	term     rdf.Term
}

// slot converts a pattern argument into a slot
func (e *Engine) slot(arg any, pos position) (slot, error) {
	switch v := arg.(type) {
	case nil:
		return slot{}, nil

	case string:
		if IsVariable(v) {
			name, err := ParseVariable(v)
			if err != nil {
				return slot{}, fmt.Errorf("%s: %w", pos, err)
			}
			return slot{variable: name}, nil
		}
		if pos == predicatePosition && v == "a" {
			return slot{term: rdf.RDFType}, nil
		}
		t, err := e.ns.Parse(v)
		if err != nil {
			return slot{}, fmt.Errorf("%s: %w", pos, err)
		}
		return slot{term: t}, nil

	case rdf.Term:
		if v.IsVariable() {
			name, err := ParseVariable("?" + v.Value())
			if err != nil {
				return slot{}, fmt.Errorf("%s: %w", pos, err)
			}
			return slot{variable: name}, nil
		}
		return slot{term: v}, nil

	default:
		return slot{}, fmt.Errorf("%w: unsupported %s argument of type %T", rdf.ErrInvalidTerm, pos, arg)
	}
}

// predicateSlot is slot with the constant-predicate IRI check
func (e *Engine) predicateSlot(arg any) (slot, error) {
	s, err := e.slot(arg, predicatePosition)
	if err != nil {
		return slot{}, err
	}
	if !s.term.IsZero() && !s.term.IsIRI() {
		return slot{}, fmt.Errorf("%w: predicate must be an IRI, got %s", ErrTypeMismatch, s.term)
	}
	return s, nil
}

func (s slot) isVariable() bool { return s.variable != "" }

func (s slot) isWildcard() bool { return s.variable == "" && s.term.IsZero() }

// resolve substitutes the solution's binding for a variable slot.
// The result is zero for wildcards and unbound variables.
func (s slot) resolve(sol Solution) rdf.Term {
	if s.isVariable() {
		return sol.Lookup(s.variable)
	}
	return s.term
}

func (s slot) String() string {
	switch {
	case s.isVariable():
		return "?" + s.variable
	case s.isWildcard():
		return "*"
	default:
		return s.term.String()
	}
}

// resolvePredicate resolves a predicate slot and checks that any value is an IRI
func resolvePredicate(s slot, sol Solution) (rdf.Term, error) {
	p := s.resolve(sol)
	if !p.IsZero() && !p.IsIRI() {
		return rdf.Term{}, fmt.Errorf("%w: %s resolved to %s, not an IRI", ErrTypeMismatch, s, p)
	}
	return p, nil
}

// extend binds the slot's variable to t. It fails if the variable is
// already bound to a different term.
func (s slot) extend(sol Solution, t rdf.Term) (Solution, bool) {
	if !s.isVariable() {
		return sol, true
	}
	if existing, ok := sol.Get(s.variable); ok {
		return sol, existing == t
	}
	return sol.With(s.variable, t), true
}
