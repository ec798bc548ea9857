package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf"
)

const ex = "http://example.org/"

var (
	alice   = rdf.NewIRI(ex + "alice")
	bob     = rdf.NewIRI(ex + "bob")
	carol   = rdf.NewIRI(ex + "carol")
	person  = rdf.NewIRI(ex + "Person")
	knows   = rdf.NewIRI(ex + "knows")
	name    = rdf.NewIRI(ex + "name")
	anyTerm = rdf.Term{}
)

func sampleTriples() []rdf.Triple {
	return []rdf.Triple{
		{Subject: alice, Predicate: rdf.RDFType, Object: person},
		{Subject: bob, Predicate: rdf.RDFType, Object: person},
		{Subject: alice, Predicate: knows, Object: bob},
		{Subject: bob, Predicate: knows, Object: carol},
		{Subject: alice, Predicate: name, Object: rdf.String("Alice")},
		{Subject: alice, Predicate: name, Object: rdf.NewLangLiteral("Alicia", "es")},
	}
}

type writableGraph interface {
	Graph
	Adder
}

// exerciseGraph checks the Find contract shared by every store
func exerciseGraph(t *testing.T, g writableGraph) {
	require.NoError(t, g.Add(sampleTriples()...))

	tests := []struct {
		name    string
		s, p, o rdf.Term
		want    int
	}{
		{"all wildcards", anyTerm, anyTerm, anyTerm, 6},
		{"subject", alice, anyTerm, anyTerm, 4},
		{"predicate", knows, anyTerm, anyTerm, 0},
		{"predicate only", anyTerm, knows, anyTerm, 2},
		{"object", anyTerm, anyTerm, person, 2},
		{"subject and predicate", alice, name, anyTerm, 2},
		{"predicate and object", anyTerm, rdf.RDFType, person, 2},
		{"subject and object", alice, anyTerm, bob, 1},
		{"fully bound", bob, knows, carol, 1},
		{"fully bound missing", carol, knows, bob, 0},
		{"literal object", anyTerm, name, rdf.String("Alice"), 1},
		{"language tagged object", anyTerm, name, rdf.NewLangLiteral("Alicia", "ES"), 1},
		{"unknown subject", rdf.NewIRI(ex + "nobody"), anyTerm, anyTerm, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := g.Find(tt.s, tt.p, tt.o)
			require.NoError(t, err)
			triples, err := Collect(it)
			require.NoError(t, err)
			assert.Len(t, triples, tt.want)
			for _, tr := range triples {
				assert.True(t, Matches(tr, tt.s, tt.p, tt.o), "unexpected triple %s", tr)
			}
		})
	}

	t.Run("close before exhaustion", func(t *testing.T) {
		it, err := g.Find(anyTerm, anyTerm, anyTerm)
		require.NoError(t, err)
		require.True(t, it.Next())
		require.NoError(t, it.Close())
		require.NoError(t, it.Close())
		assert.False(t, it.Next())
	})
}

func TestMemoryGraph(t *testing.T) {
	exerciseGraph(t, NewMemoryGraph())
}

func TestMemoryGraphInsertionOrder(t *testing.T) {
	g := NewMemoryGraph(sampleTriples()...)
	triples, err := Collect(mustFind(t, g, anyTerm, anyTerm, anyTerm))
	require.NoError(t, err)
	assert.Equal(t, sampleTriples(), triples)
}

func TestMemoryGraphDeduplicates(t *testing.T) {
	g := NewMemoryGraph()
	tr := rdf.Triple{Subject: alice, Predicate: knows, Object: bob}
	require.NoError(t, g.Add(tr, tr))
	require.NoError(t, g.Add(tr))
	assert.Equal(t, 1, g.Len())
}

func TestMemoryGraphRejectsInvalidTriples(t *testing.T) {
	g := NewMemoryGraph()
	err := g.Add(rdf.Triple{Subject: rdf.String("x"), Predicate: knows, Object: bob})
	assert.ErrorIs(t, err, rdf.ErrInvalidTerm)
	assert.Equal(t, 0, g.Len())
}

func TestMemoryGraphRemove(t *testing.T) {
	g := NewMemoryGraph(sampleTriples()...)
	g.Remove(rdf.Triple{Subject: alice, Predicate: knows, Object: bob})
	assert.Equal(t, 5, g.Len())

	triples, err := Collect(mustFind(t, g, anyTerm, knows, anyTerm))
	require.NoError(t, err)
	assert.Equal(t, []rdf.Triple{{Subject: bob, Predicate: knows, Object: carol}}, triples)

	g.Clear()
	assert.Equal(t, 0, g.Len())
}

func TestMemoryGraphIteratorSnapshot(t *testing.T) {
	g := NewMemoryGraph(sampleTriples()...)
	it := mustFind(t, g, anyTerm, knows, anyTerm)

	// Writes after Find are not visible to the open iterator
	require.NoError(t, g.Add(rdf.Triple{Subject: carol, Predicate: knows, Object: alice}))
	g.Remove(rdf.Triple{Subject: bob, Predicate: knows, Object: carol})

	triples, err := Collect(it)
	require.NoError(t, err)
	assert.Len(t, triples, 2)
}

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator(sampleTriples()[:2])
	assert.Equal(t, rdf.Triple{}, it.Triple())
	require.True(t, it.Next())
	assert.Equal(t, alice, it.Triple().Subject)
	require.True(t, it.Next())
	assert.False(t, it.Next())
	assert.False(t, it.Next())
	assert.NoError(t, it.Close())
}

func mustFind(t *testing.T, g Graph, s, p, o rdf.Term) Iterator {
	t.Helper()
	it, err := g.Find(s, p, o)
	require.NoError(t, err)
	return it
}
