package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf"
)

const ex = "http://example.org/"

func testNamespaces(t *testing.T) *rdf.Namespaces {
	ns := rdf.DefaultNamespaces()
	require.NoError(t, ns.Register("ex", ex))
	return ns
}

func TestParse(t *testing.T) {
	ns := testNamespaces(t)
	next := &Predicate{IRI: rdf.NewIRI(ex + "next")}
	knows := &Predicate{IRI: rdf.NewIRI(ex + "knows")}

	tests := []struct {
		input    string
		expected Expr
	}{
		{"ex:next", next},
		{"<http://example.org/next>", next},
		{"a", &Predicate{IRI: rdf.RDFType}},
		{"ex:next*", &ZeroOrMore{Path: next}},
		{"ex:next+", &OneOrMore{Path: next}},
		{"ex:next?", &ZeroOrOne{Path: next}},
		{"^ex:knows", &Inverse{IRI: rdf.NewIRI(ex + "knows")}},
		{"ex:next/ex:knows", &Sequence{Steps: []Expr{next, knows}}},
		{"ex:next|ex:knows", &Alternative{Choices: []Expr{next, knows}}},
		{"ex:next/ex:knows|ex:next", &Alternative{Choices: []Expr{
			&Sequence{Steps: []Expr{next, knows}},
			next,
		}}},
		{"(ex:next|ex:knows)+", &OneOrMore{Path: &Alternative{Choices: []Expr{next, knows}}}},
		{"^ex:knows*", &ZeroOrMore{Path: &Inverse{IRI: rdf.NewIRI(ex + "knows")}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, ns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	ns := testNamespaces(t)

	for _, input := range []string{
		"",
		"ex:next/",
		"(ex:next",
		"ex:next)",
		"^(ex:next/ex:knows)",
		"^ex:next+x|",
		"<http://unterminated",
		"42",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input, ns)
			assert.ErrorIs(t, err, ErrUnsupportedPath)
		})
	}
}

func TestPathString(t *testing.T) {
	ns := testNamespaces(t)
	expr := MustParse("(ex:a|^ex:b)/ex:c*", ns)
	assert.Equal(t, "(<http://example.org/a>|^<http://example.org/b>)/(<http://example.org/c>*)", expr.String())

	// Rendering parses back to the same expression
	again, err := Parse(expr.String(), ns)
	require.NoError(t, err)
	assert.Equal(t, expr, again)
}

func TestConstructorsRejectMalformedShapes(t *testing.T) {
	_, err := NewPredicate(rdf.String("x"))
	assert.ErrorIs(t, err, ErrUnsupportedPath)

	_, err = NewInverse(rdf.NewBlankNode("b"))
	assert.ErrorIs(t, err, ErrUnsupportedPath)

	_, err = NewSequence()
	assert.ErrorIs(t, err, ErrUnsupportedPath)

	_, err = NewAlternative(nil)
	assert.ErrorIs(t, err, ErrUnsupportedPath)

	_, err = NewZeroOrMore(nil)
	assert.ErrorIs(t, err, ErrUnsupportedPath)

	p, err := NewPredicate(rdf.NewIRI(ex + "p"))
	require.NoError(t, err)
	seq, err := NewSequence(p, p)
	require.NoError(t, err)
	assert.Len(t, seq.Steps, 2)
}
