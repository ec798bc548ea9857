package query

import (
	"github.com/wbrown/janus-rdfquery/rdf"
)

// FilterFunc decides whether a solution passes a Filter. An error stops
// the pipeline.
type FilterFunc func(Solution) (bool, error)

// BindFunc computes the value of a Bind. A zero term leaves the variable unbound.
type BindFunc func(Solution) (rdf.Term, error)

// Variable names below may be given with or without the sigil. A malformed
// name fails with ErrInvalidVariableName when the expression is evaluated.

// exprVariable parses a helper's variable argument, accepting the bare form
func exprVariable(variable string) (string, error) {
	if !IsVariable(variable) {
		variable = string(VariableSigil) + variable
	}
	return ParseVariable(variable)
}

// termFilter tests the variable's binding in each solution
func termFilter(variable string, test func(t rdf.Term, bound bool) bool) FilterFunc {
	name, err := exprVariable(variable)
	return func(sol Solution) (bool, error) {
		if err != nil {
			return false, err
		}
		t, bound := sol.Get(name)
		return test(t, bound), nil
	}
}

// Equals passes solutions where the variable is bound to value
func Equals(variable string, value rdf.Term) FilterFunc {
	return termFilter(variable, func(t rdf.Term, bound bool) bool {
		return bound && t == value
	})
}

// NotEquals passes solutions where the variable is not bound to value,
// including solutions where it is unbound
func NotEquals(variable string, value rdf.Term) FilterFunc {
	return Not(Equals(variable, value))
}

// Bound passes solutions that bind the variable
func Bound(variable string) FilterFunc {
	return termFilter(variable, func(_ rdf.Term, bound bool) bool {
		return bound
	})
}

// IsIRI passes solutions where the variable is bound to an IRI
func IsIRI(variable string) FilterFunc {
	return termFilter(variable, func(t rdf.Term, _ bool) bool {
		return t.IsIRI()
	})
}

// IsBlankNode passes solutions where the variable is bound to a blank node
func IsBlankNode(variable string) FilterFunc {
	return termFilter(variable, func(t rdf.Term, _ bool) bool {
		return t.IsBlankNode()
	})
}

// IsLiteral passes solutions where the variable is bound to a literal
func IsLiteral(variable string) FilterFunc {
	return termFilter(variable, func(t rdf.Term, _ bool) bool {
		return t.IsLiteral()
	})
}

// And passes solutions accepted by every filter
func And(filters ...FilterFunc) FilterFunc {
	return func(sol Solution) (bool, error) {
		for _, f := range filters {
			if ok, err := f(sol); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Or passes solutions accepted by any filter
func Or(filters ...FilterFunc) FilterFunc {
	return func(sol Solution) (bool, error) {
		for _, f := range filters {
			if ok, err := f(sol); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// Not inverts a filter
func Not(f FilterFunc) FilterFunc {
	return func(sol Solution) (bool, error) {
		ok, err := f(sol)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// Constant binds the same term for every solution
func Constant(t rdf.Term) BindFunc {
	return func(Solution) (rdf.Term, error) {
		return t, nil
	}
}

// Str binds the lexical value of a variable as an xsd:string
func Str(variable string) BindFunc {
	name, err := exprVariable(variable)
	return func(sol Solution) (rdf.Term, error) {
		if err != nil {
			return rdf.Term{}, err
		}
		t, ok := sol.Get(name)
		if !ok {
			return rdf.Term{}, nil
		}
		return rdf.String(t.Value()), nil
	}
}

// LocalNameOf binds the local name of an IRI variable as an xsd:string.
// Non-IRI values leave the variable unbound.
func LocalNameOf(variable string) BindFunc {
	name, err := exprVariable(variable)
	return func(sol Solution) (rdf.Term, error) {
		if err != nil {
			return rdf.Term{}, err
		}
		t := sol.Lookup(name)
		if !t.IsIRI() {
			return rdf.Term{}, nil
		}
		local, err := rdf.LocalName(t.Value())
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.String(local), nil
	}
}
