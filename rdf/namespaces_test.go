package rdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespacesParse(t *testing.T) {
	ns := DefaultNamespaces()
	require.NoError(t, ns.Register("ex", "http://example.org/"))

	tests := []struct {
		input    string
		expected Term
	}{
		{"true", NewLiteral("true", XSDBoolean)},
		{"false", NewLiteral("false", XSDBoolean)},
		{"42", NewLiteral("42", XSDInteger)},
		{"4.25", NewLiteral("4.25", XSDFloat)},
		{"owl:Thing", NewIRI(NamespaceOWL + "Thing")},
		{"ex:alice", NewIRI("http://example.org/alice")},
		{"http://other.org/x", NewIRI("http://other.org/x")},
		{"<urn:x>", NewIRI("urn:x")},
		{"_:b1", NewBlankNode("b1")},
		{`"hello"`, String("hello")},
		{`"chat"@FR`, NewLangLiteral("chat", "fr")},
		{`"5"^^xsd:integer`, NewLiteral("5", XSDInteger)},
		{`"a \"quoted\" word"`, String(`a "quoted" word`)},
		{"hello world", String("hello world")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ns.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNamespacesParseErrors(t *testing.T) {
	ns := DefaultNamespaces()

	for _, input := range []string{"", "<unterminated", `"open`, `"x"junk`, "_:"} {
		_, err := ns.Parse(input)
		assert.True(t, errors.Is(err, ErrInvalidTerm), "input %q: %v", input, err)
	}
}

func TestNamespacesRegister(t *testing.T) {
	ns := NewNamespaces()
	require.NoError(t, ns.Register("ex", "http://example.org/"))

	err := ns.Register("ex", "http://elsewhere.org/")
	assert.ErrorIs(t, err, ErrPrefixRegistered)

	iri, ok := ns.Lookup("ex")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/", iri)

	_, err = ns.Expand("nope:thing")
	assert.ErrorIs(t, err, ErrUnknownPrefix)
}

func TestNamespacesAreIndependent(t *testing.T) {
	a := DefaultNamespaces()
	b := a.Clone()
	require.NoError(t, a.Register("ex", "http://a.org/"))
	require.NoError(t, b.Register("ex", "http://b.org/"))

	assert.Equal(t, NewIRI("http://a.org/x"), a.MustParse("ex:x"))
	assert.Equal(t, NewIRI("http://b.org/x"), b.MustParse("ex:x"))
}

func TestNamespacesLoadYAML(t *testing.T) {
	ns := NewNamespaces()
	doc := `
prefixes:
  ex: http://example.org/
  foaf: http://xmlns.com/foaf/0.1/
`
	require.NoError(t, ns.LoadYAML(strings.NewReader(doc)))
	assert.Equal(t, []string{"ex", "foaf"}, ns.Prefixes())

	err := ns.LoadYAML(strings.NewReader("prefixes:\n  ex: http://dup.org/\n"))
	assert.ErrorIs(t, err, ErrPrefixRegistered)
}

func TestLocalName(t *testing.T) {
	name, err := LocalName(NamespaceOWL + "Thing")
	require.NoError(t, err)
	assert.Equal(t, "Thing", name)

	name, err = LocalName("http://schema.org/Person")
	require.NoError(t, err)
	assert.Equal(t, "Person", name)

	_, err = LocalName("urn:x")
	assert.Error(t, err)
}

func TestNewFreshBlankNode(t *testing.T) {
	a := NewFreshBlankNode()
	b := NewFreshBlankNode()
	assert.True(t, a.IsBlankNode())
	assert.NotEqual(t, a, b)
}
