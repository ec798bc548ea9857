package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf"
)

func TestKeyEncoderRoundTrip(t *testing.T) {
	for _, tr := range sampleTriples() {
		for _, idx := range AllIndices {
			t.Run(idx.String()+" "+tr.String(), func(t *testing.T) {
				key := EncodeKey(idx, tr)
				assert.Equal(t, byte(idx), key[0])

				decoded, err := DecodeKey(idx, key)
				require.NoError(t, err)
				assert.Equal(t, tr, decoded)
			})
		}
	}
}

func TestDecodeKeyErrors(t *testing.T) {
	tr := sampleTriples()[0]

	_, err := DecodeKey(SPO, nil)
	assert.Error(t, err)

	_, err = DecodeKey(POS, EncodeKey(SPO, tr))
	assert.Error(t, err, "wrong index prefix")

	key := EncodeKey(SPO, tr)
	_, err = DecodeKey(SPO, key[:len(key)-2])
	assert.Error(t, err, "truncated key")

	_, err = DecodeKey(SPO, append(key, 0x00))
	assert.Error(t, err, "trailing bytes")
}

func TestEncodePrefixRange(t *testing.T) {
	tr := sampleTriples()[2]
	start, end := EncodePrefixRange(SPO, tr.Subject)
	key := EncodeKey(SPO, tr)

	assert.True(t, bytes.HasPrefix(key, start))
	assert.True(t, bytes.Compare(key, start) >= 0)
	assert.True(t, bytes.Compare(key, end) < 0)

	// Trailing 0xFF bytes are dropped before incrementing
	start, end = EncodePrefixRange(SPO, rdf.NewIRI("\xff"))
	assert.Equal(t, []byte{byte(SPO), byte(rdf.KindIRI), 0x01, 0xff}, start)
	assert.Equal(t, []byte{byte(SPO), byte(rdf.KindIRI), 0x02}, end)
}

func TestChooseIndex(t *testing.T) {
	tests := []struct {
		name      string
		s, p, o   rdf.Term
		index     IndexType
		prefixLen int
	}{
		{"none", anyTerm, anyTerm, anyTerm, SPO, 0},
		{"s", alice, anyTerm, anyTerm, SPO, 1},
		{"p", anyTerm, knows, anyTerm, POS, 1},
		{"o", anyTerm, anyTerm, bob, OSP, 1},
		{"sp", alice, knows, anyTerm, SPO, 2},
		{"po", anyTerm, knows, bob, POS, 2},
		{"so", alice, anyTerm, bob, OSP, 2},
		{"spo", alice, knows, bob, SPO, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, prefix := ChooseIndex(tt.s, tt.p, tt.o)
			assert.Equal(t, tt.index, index)
			assert.Len(t, prefix, tt.prefixLen)
		})
	}
}
