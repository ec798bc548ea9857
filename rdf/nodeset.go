package rdf

import (
	"strconv"
	"strings"
)

// NodeSet is a deduplicating collection of terms.
// Membership uses structural term equality; iteration follows the order in
// which members were first added.
type NodeSet struct {
	index  map[Term]struct{}
	values []Term
}

// NewNodeSet creates a set holding the given terms
func NewNodeSet(terms ...Term) *NodeSet {
	s := &NodeSet{index: make(map[Term]struct{}, len(terms))}
	s.AddAll(terms)
	return s
}

// Add inserts a term and reports whether it was new
func (s *NodeSet) Add(t Term) bool {
	if s.index == nil {
		s.index = make(map[Term]struct{})
	}
	if _, ok := s.index[t]; ok {
		return false
	}
	s.index[t] = struct{}{}
	s.values = append(s.values, t)
	return true
}

// AddAll inserts every term of the slice
func (s *NodeSet) AddAll(terms []Term) {
	for _, t := range terms {
		s.Add(t)
	}
}

// Contains reports membership
func (s *NodeSet) Contains(t Term) bool {
	_, ok := s.index[t]
	return ok
}

// ForEach calls fn for every member in insertion order
func (s *NodeSet) ForEach(fn func(Term)) {
	for _, t := range s.values {
		fn(t)
	}
}

// Len returns the number of members
func (s *NodeSet) Len() int {
	return len(s.values)
}

// ToSlice returns the members in insertion order.
// The returned slice is a copy.
func (s *NodeSet) ToSlice() []Term {
	out := make([]Term, len(s.values))
	copy(out, s.values)
	return out
}

// String returns a representation like NodeSet(2): [<a>, <b>]
func (s *NodeSet) String() string {
	var b strings.Builder
	b.WriteString("NodeSet(")
	b.WriteString(strconv.Itoa(len(s.values)))
	b.WriteString("): [")
	for i, t := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString("]")
	return b.String()
}
