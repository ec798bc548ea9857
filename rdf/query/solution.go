package query

import (
	"sort"
	"strings"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// Solution is an immutable set of variable bindings.
//
// Extending a solution with With returns a new solution that shares its
// parent's bindings through a parent pointer; the parent is never changed,
// so branches derived from the same solution never observe each other.
// The zero Solution has no bindings.
type Solution struct {
	head *binding
}

type binding struct {
	name   string
	term   rdf.Term
	parent *binding
	size   int
}

// NewSolution creates a solution from a map keyed by variable name, with or
// without the sigil. Names are bound in sorted order.
func NewSolution(bindings map[string]rdf.Term) Solution {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var s Solution
	for _, name := range names {
		if t := bindings[name]; !t.IsZero() {
			s = s.With(name, t)
		}
	}
	return s
}

// Get returns the term bound to a variable. The name may carry the sigil.
func (s Solution) Get(name string) (rdf.Term, bool) {
	name = strings.TrimPrefix(name, "?")
	for b := s.head; b != nil; b = b.parent {
		if b.name == name {
			return b.term, true
		}
	}
	return rdf.Term{}, false
}

// Lookup returns the bound term, or the zero term when unbound
func (s Solution) Lookup(name string) rdf.Term {
	t, _ := s.Get(name)
	return t
}

// Has reports whether a variable is bound
func (s Solution) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// With returns a solution extended with one binding. Binding a zero term
// returns s unchanged, as does rebinding a variable to an equal term.
// Rebinding to a different term shadows the old value; operators check
// for conflicts before extending.
func (s Solution) With(name string, t rdf.Term) Solution {
	name = strings.TrimPrefix(name, "?")
	if t.IsZero() {
		return s
	}
	if old, ok := s.Get(name); ok && old == t {
		return s
	}
	size := 1
	if s.head != nil {
		size = s.head.size + 1
	}
	return Solution{head: &binding{name: name, term: t, parent: s.head, size: size}}
}

// Len returns the number of bound variables
func (s Solution) Len() int {
	return len(s.Names())
}

// IsEmpty reports whether nothing is bound
func (s Solution) IsEmpty() bool {
	return s.head == nil
}

// Names returns the bound variable names (without sigil) in binding order
func (s Solution) Names() []string {
	if s.head == nil {
		return nil
	}
	chain := make([]*binding, 0, s.head.size)
	for b := s.head; b != nil; b = b.parent {
		chain = append(chain, b)
	}

	seen := make(map[string]struct{}, len(chain))
	names := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		name := chain[i].name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Map returns the bindings as a map keyed by name without sigil
func (s Solution) Map() map[string]rdf.Term {
	out := make(map[string]rdf.Term)
	for _, name := range s.Names() {
		out[name] = s.Lookup(name)
	}
	return out
}

// Equal reports whether two solutions bind the same variables to the same terms
func (s Solution) Equal(other Solution) bool {
	names := s.Names()
	if len(names) != other.Len() {
		return false
	}
	for _, name := range names {
		t, ok := other.Get(name)
		if !ok || t != s.Lookup(name) {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of the bindings, independent of binding order
func (s Solution) Key() string {
	names := s.Names()
	sort.Strings(names)

	var buf []byte
	for _, name := range names {
		buf = append(buf, name...)
		buf = append(buf, 0)
		buf = rdf.AppendTermBytes(buf, s.Lookup(name))
	}
	return string(buf)
}

// String renders the bindings as {?a=<iri>, ?b="x"} in binding order
func (s Solution) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('?')
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(s.Lookup(name).String())
	}
	sb.WriteByte('}')
	return sb.String()
}
