// Package path defines property path expressions.
//
// Expr is a sealed interface: only the types in this package implement it, so
// evaluators can switch exhaustively over
//
//	*Predicate    p
//	*Sequence     p1 / p2 / ...
//	*Alternative  p1 | p2 | ...
//	*Inverse      ^p (simple IRI predicates only)
//	*ZeroOrOne    p?
//	*ZeroOrMore   p*
//	*OneOrMore    p+
//
// The constructors validate their arguments, so a malformed shape is a
// construction error. Expressions are immutable and may be evaluated many times.
package path

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// ErrUnsupportedPath is returned for unrecognized or structurally invalid path expressions
var ErrUnsupportedPath = errors.New("unsupported path")

// Expr is a property path expression
type Expr interface {
	pathExpr() // Marker method - seals interface to this package
	String() string
}

// Predicate is a single hop along an IRI predicate
type Predicate struct {
	IRI rdf.Term
}

// Sequence threads the reachable nodes through each step, left to right
type Sequence struct {
	Steps []Expr
}

// Alternative is the union of its choices evaluated from the same node
type Alternative struct {
	Choices []Expr
}

// Inverse walks a simple IRI predicate from object to subject
type Inverse struct {
	IRI rdf.Term
}

// ZeroOrOne is the node itself plus one application of Path
type ZeroOrOne struct {
	Path Expr
}

// ZeroOrMore is the node itself plus the transitive closure of Path
type ZeroOrMore struct {
	Path Expr
}

// OneOrMore is the transitive closure of Path
type OneOrMore struct {
	Path Expr
}

func (*Predicate) pathExpr()   {}
func (*Sequence) pathExpr()    {}
func (*Alternative) pathExpr() {}
func (*Inverse) pathExpr()     {}
func (*ZeroOrOne) pathExpr()   {}
func (*ZeroOrMore) pathExpr()  {}
func (*OneOrMore) pathExpr()   {}

// NewPredicate creates a predicate hop
func NewPredicate(iri rdf.Term) (*Predicate, error) {
	if !iri.IsIRI() {
		return nil, fmt.Errorf("%w: predicate must be an IRI, got %s", ErrUnsupportedPath, iri)
	}
	return &Predicate{IRI: iri}, nil
}

// NewSequence creates a sequence path of at least one step
func NewSequence(steps ...Expr) (*Sequence, error) {
	if err := checkChildren("sequence", steps); err != nil {
		return nil, err
	}
	return &Sequence{Steps: append([]Expr(nil), steps...)}, nil
}

// NewAlternative creates an alternative path of at least one choice
func NewAlternative(choices ...Expr) (*Alternative, error) {
	if err := checkChildren("alternative", choices); err != nil {
		return nil, err
	}
	return &Alternative{Choices: append([]Expr(nil), choices...)}, nil
}

// NewInverse creates an inverse hop. Only plain IRI predicates can be inverted.
func NewInverse(iri rdf.Term) (*Inverse, error) {
	if !iri.IsIRI() {
		return nil, fmt.Errorf("%w: inverse paths only work for IRIs, got %s", ErrUnsupportedPath, iri)
	}
	return &Inverse{IRI: iri}, nil
}

// NewZeroOrOne creates p?
func NewZeroOrOne(p Expr) (*ZeroOrOne, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: zero-or-one of nil path", ErrUnsupportedPath)
	}
	return &ZeroOrOne{Path: p}, nil
}

// NewZeroOrMore creates p*
func NewZeroOrMore(p Expr) (*ZeroOrMore, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: zero-or-more of nil path", ErrUnsupportedPath)
	}
	return &ZeroOrMore{Path: p}, nil
}

// NewOneOrMore creates p+
func NewOneOrMore(p Expr) (*OneOrMore, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: one-or-more of nil path", ErrUnsupportedPath)
	}
	return &OneOrMore{Path: p}, nil
}

func checkChildren(kind string, children []Expr) error {
	if len(children) == 0 {
		return fmt.Errorf("%w: empty %s", ErrUnsupportedPath, kind)
	}
	for i, c := range children {
		if c == nil {
			return fmt.Errorf("%w: nil element %d in %s", ErrUnsupportedPath, i, kind)
		}
	}
	return nil
}

// String returns the SPARQL property path syntax

func (p *Predicate) String() string { return p.IRI.String() }

func (p *Sequence) String() string { return joinExprs(p.Steps, "/") }

func (p *Alternative) String() string { return joinExprs(p.Choices, "|") }

func (p *Inverse) String() string { return "^" + p.IRI.String() }

func (p *ZeroOrOne) String() string { return group(p.Path) + "?" }

func (p *ZeroOrMore) String() string { return group(p.Path) + "*" }

func (p *OneOrMore) String() string { return group(p.Path) + "+" }

func joinExprs(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = group(e)
	}
	return strings.Join(parts, sep)
}

// group parenthesizes composite sub-expressions
func group(e Expr) string {
	if e == nil {
		return "nil"
	}
	switch e.(type) {
	case *Predicate, *Inverse:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}
