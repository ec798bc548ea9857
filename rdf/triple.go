package rdf

import (
	"fmt"
)

// Triple is the fundamental unit of graph data: a single subject/predicate/object fact
type Triple struct {
	Subject   Term // IRI or blank node
	Predicate Term // IRI
	Object    Term // any concrete term
}

// NewTriple creates a triple, checking the position constraints
func NewTriple(s, p, o Term) (Triple, error) {
	t := Triple{Subject: s, Predicate: p, Object: o}
	if err := t.Validate(); err != nil {
		return Triple{}, err
	}
	return t, nil
}

// Validate checks that the triple is well formed
func (t Triple) Validate() error {
	if !t.Subject.IsResource() {
		return fmt.Errorf("%w: subject must be an IRI or blank node, got %s", ErrInvalidTerm, t.Subject)
	}
	if !t.Predicate.IsIRI() {
		return fmt.Errorf("%w: predicate must be an IRI, got %s", ErrInvalidTerm, t.Predicate)
	}
	if t.Object.IsZero() || t.Object.IsVariable() {
		return fmt.Errorf("%w: object must be a concrete term, got %s", ErrInvalidTerm, t.Object)
	}
	return nil
}

// String returns the N-Triples representation of the triple
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}
