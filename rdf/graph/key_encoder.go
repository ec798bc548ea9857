package graph

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// IndexType identifies a permutation index over triples
type IndexType byte

const (
	SPO IndexType = iota + 1 // Subject + Predicate + Object
	POS                      // Predicate + Object + Subject
	OSP                      // Object + Subject + Predicate
)

// AllIndices lists every index a triple is written to
var AllIndices = []IndexType{SPO, POS, OSP}

func (i IndexType) String() string {
	switch i {
	case SPO:
		return "SPO"
	case POS:
		return "POS"
	case OSP:
		return "OSP"
	default:
		return fmt.Sprintf("IndexType(%d)", byte(i))
	}
}

// order returns the triple components in the index's key order
func (i IndexType) order(s, p, o rdf.Term) [3]rdf.Term {
	switch i {
	case POS:
		return [3]rdf.Term{p, o, s}
	case OSP:
		return [3]rdf.Term{o, s, p}
	default:
		return [3]rdf.Term{s, p, o}
	}
}

// EncodeKey creates an index key from a triple.
// Each index has a 1-byte prefix to separate namespaces.
func EncodeKey(index IndexType, t rdf.Triple) []byte {
	parts := index.order(t.Subject, t.Predicate, t.Object)
	key := []byte{byte(index)}
	for _, term := range parts {
		key = rdf.AppendTermBytes(key, term)
	}
	return key
}

// DecodeKey extracts the triple stored in an index key
func DecodeKey(index IndexType, key []byte) (rdf.Triple, error) {
	if len(key) < 1 {
		return rdf.Triple{}, fmt.Errorf("key too short")
	}
	if IndexType(key[0]) != index {
		return rdf.Triple{}, fmt.Errorf("key prefix %d does not belong to %s index", key[0], index)
	}

	var parts [3]rdf.Term
	pos := 1
	for i := range parts {
		term, n, err := rdf.TermFromBytes(key[pos:])
		if err != nil {
			return rdf.Triple{}, fmt.Errorf("%s key component %d: %w", index, i, err)
		}
		parts[i] = term
		pos += n
	}
	if pos != len(key) {
		return rdf.Triple{}, fmt.Errorf("%s key has %d trailing bytes", index, len(key)-pos)
	}

	switch index {
	case POS:
		return rdf.Triple{Subject: parts[2], Predicate: parts[0], Object: parts[1]}, nil
	case OSP:
		return rdf.Triple{Subject: parts[1], Predicate: parts[2], Object: parts[0]}, nil
	default:
		return rdf.Triple{Subject: parts[0], Predicate: parts[1], Object: parts[2]}, nil
	}
}

// EncodePrefix creates a prefix key from the leading bound terms
func EncodePrefix(index IndexType, terms ...rdf.Term) []byte {
	prefix := []byte{byte(index)}
	for _, term := range terms {
		prefix = rdf.AppendTermBytes(prefix, term)
	}
	return prefix
}

// EncodePrefixRange creates start and end keys for a prefix scan
func EncodePrefixRange(index IndexType, terms ...rdf.Term) (start, end []byte) {
	start = EncodePrefix(index, terms...)

	// End key is start with last byte incremented
	end = make([]byte, len(start))
	copy(end, start)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			end = end[:i+1]
			return start, end
		}
	}

	// All bytes are 0xFF; scan to the end of the keyspace
	return start, nil
}

// ChooseIndex picks the index whose key order puts the bound positions
// first, and returns the bound terms that form the scan prefix
func ChooseIndex(s, p, o rdf.Term) (IndexType, []rdf.Term) {
	sb, pb, ob := !s.IsZero(), !p.IsZero(), !o.IsZero()
	switch {
	case sb && pb && ob:
		return SPO, []rdf.Term{s, p, o}
	case sb && pb:
		return SPO, []rdf.Term{s, p}
	case pb && ob:
		return POS, []rdf.Term{p, o}
	case sb && ob:
		return OSP, []rdf.Term{o, s}
	case sb:
		return SPO, []rdf.Term{s}
	case pb:
		return POS, []rdf.Term{p}
	case ob:
		return OSP, []rdf.Term{o}
	default:
		return SPO, nil
	}
}
