// Package graph provides the triple stores the query engine reads from.
package graph

import (
	"github.com/wbrown/janus-rdfquery/rdf"
)

// Graph is the read contract the query engine consumes.
// A zero term in any position of Find is a wildcard.
type Graph interface {
	Find(s, p, o rdf.Term) (Iterator, error)
}

// Iterator provides sequential access to matched triples.
// Close is safe to call before exhaustion and more than once.
type Iterator interface {
	Next() bool
	Triple() rdf.Triple
	Err() error
	Close() error
}

// Matches reports whether a triple matches a pattern with zero-term wildcards
func Matches(t rdf.Triple, s, p, o rdf.Term) bool {
	return (s.IsZero() || s == t.Subject) &&
		(p.IsZero() || p == t.Predicate) &&
		(o.IsZero() || o == t.Object)
}

// SliceIterator iterates over a fixed slice of triples
type SliceIterator struct {
	triples []rdf.Triple
	pos     int
}

// NewSliceIterator creates an iterator over triples
func NewSliceIterator(triples []rdf.Triple) *SliceIterator {
	return &SliceIterator{triples: triples, pos: -1}
}

// Next advances the iterator
func (it *SliceIterator) Next() bool {
	if it.pos >= len(it.triples) {
		return false
	}
	it.pos++
	return it.pos < len(it.triples)
}

// Triple returns the current triple
func (it *SliceIterator) Triple() rdf.Triple {
	if it.pos >= 0 && it.pos < len(it.triples) {
		return it.triples[it.pos]
	}
	return rdf.Triple{}
}

// Err always returns nil
func (it *SliceIterator) Err() error { return nil }

// Close releases the slice
func (it *SliceIterator) Close() error {
	it.triples = nil
	it.pos = 0
	return nil
}

// Collect drains an iterator into a slice and closes it
func Collect(it Iterator) ([]rdf.Triple, error) {
	defer it.Close()
	var out []rdf.Triple
	for it.Next() {
		out = append(out, it.Triple())
	}
	return out, it.Err()
}
