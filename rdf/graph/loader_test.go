package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf"
)

func TestLoad(t *testing.T) {
	input := `
# people
@prefix ex: <http://example.org/> .
ex:alice a ex:Person .
ex:alice ex:name "Alice Smith" .
ex:alice ex:name "Alicia"@es .
ex:alice ex:age 42 .
ex:alice ex:knows <http://example.org/bob> .
_:b1 ex:knows ex:alice
`
	ns := rdf.DefaultNamespaces()
	triples, err := Load(strings.NewReader(input), ns)
	require.NoError(t, err)

	expected := []rdf.Triple{
		{Subject: alice, Predicate: rdf.RDFType, Object: person},
		{Subject: alice, Predicate: name, Object: rdf.String("Alice Smith")},
		{Subject: alice, Predicate: name, Object: rdf.NewLangLiteral("Alicia", "es")},
		{Subject: alice, Predicate: rdf.NewIRI(ex + "age"), Object: rdf.Integer(42)},
		{Subject: alice, Predicate: knows, Object: bob},
		{Subject: rdf.NewBlankNode("b1"), Predicate: knows, Object: alice},
	}
	assert.Equal(t, expected, triples)

	namespace, ok := ns.Lookup("ex")
	assert.True(t, ok)
	assert.Equal(t, ex, namespace)
}

func TestLoadFreshBlankNodes(t *testing.T) {
	ns := rdf.DefaultNamespaces()
	require.NoError(t, ns.Register("ex", ex))

	triples, err := Load(strings.NewReader("[] ex:knows ex:alice .\n[] ex:knows ex:alice ."), ns)
	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.True(t, triples[0].Subject.IsBlankNode())
	assert.NotEqual(t, triples[0].Subject, triples[1].Subject)
}

func TestLoadAttachedTerminator(t *testing.T) {
	input := `@prefix ex: <http://example.org/>.
ex:alice ex:knows ex:bob.
ex:alice ex:name "Alice".
ex:alice ex:name "Alicia"@es.
ex:alice ex:knows <http://example.org/bob>.
`
	triples, err := Load(strings.NewReader(input), rdf.DefaultNamespaces())
	require.NoError(t, err)
	assert.Equal(t, []rdf.Triple{
		{Subject: alice, Predicate: knows, Object: bob},
		{Subject: alice, Predicate: name, Object: rdf.String("Alice")},
		{Subject: alice, Predicate: name, Object: rdf.NewLangLiteral("Alicia", "es")},
		{Subject: alice, Predicate: knows, Object: bob},
	}, triples)
}

func TestLoadErrors(t *testing.T) {
	ns := rdf.DefaultNamespaces()
	require.NoError(t, ns.Register("ex", ex))

	for name, input := range map[string]string{
		"too few terms":        "ex:alice ex:knows .",
		"literal subject":      `"alice" ex:knows ex:bob .`,
		"literal predicate":    `ex:alice "knows" ex:bob .`,
		"unterminated literal": `ex:alice ex:name "Alice .`,
		"conflicting prefix":   "@prefix ex: <http://other.org/> .",
		"malformed prefix":     "@prefix ex <http://other.org/> .",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(input), ns)
			assert.Error(t, err)
		})
	}
}

func TestLoadInto(t *testing.T) {
	g := NewMemoryGraph()
	n, err := LoadInto(g, strings.NewReader("<http://example.org/a> <http://example.org/p> 1 .\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, g.Len())
}
