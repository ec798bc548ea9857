package rdf

import (
	"sort"
	"testing"
)

func TestCompareTerms(t *testing.T) {
	tests := []struct {
		name     string
		left     Term
		right    Term
		expected int
	}{
		{"both absent", Term{}, Term{}, 0},
		{"absent first", Term{}, NewIRI("http://a"), -1},
		{"absent second", NewIRI("http://a"), Term{}, 1},
		{"blank before literal", NewBlankNode("x"), String("x"), -1},
		{"literal before iri", String("z"), NewIRI("http://a"), -1},
		{"iri by value", NewIRI("http://a"), NewIRI("http://b"), -1},
		{"equal iris", NewIRI("http://a"), NewIRI("http://a"), 0},
		{"lexical integers", Integer(10), Integer(2), -1},
		{"datatype tiebreak", NewLiteral("1", XSDInteger), NewLiteral("1", XSDString), -1},
		{"language tiebreak", NewLangLiteral("chat", "en"), NewLangLiteral("chat", "fr"), -1},
		{"equal lang literals", NewLangLiteral("x", "EN"), NewLangLiteral("x", "en"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareTerms(tt.left, tt.right); got != tt.expected {
				t.Errorf("CompareTerms(%s, %s) = %d, want %d", tt.left, tt.right, got, tt.expected)
			}
			if got := CompareTerms(tt.right, tt.left); got != -tt.expected {
				t.Errorf("CompareTerms(%s, %s) = %d, want %d", tt.right, tt.left, got, -tt.expected)
			}
		})
	}
}

func TestCompareTermsSortIsReproducible(t *testing.T) {
	terms := []Term{
		NewIRI("http://example.org/b"),
		String("b"),
		{},
		NewBlankNode("n1"),
		NewIRI("http://example.org/a"),
		String("a"),
	}
	sort.SliceStable(terms, func(i, j int) bool { return CompareTerms(terms[i], terms[j]) < 0 })

	expected := []Term{
		{},
		NewBlankNode("n1"),
		String("a"),
		String("b"),
		NewIRI("http://example.org/a"),
		NewIRI("http://example.org/b"),
	}
	for i := range expected {
		if terms[i] != expected[i] {
			t.Errorf("position %d: got %s, want %s", i, terms[i], expected[i])
		}
	}
}
