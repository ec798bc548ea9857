package rdf

import (
	"encoding/binary"
	"fmt"
)

// AppendTermBytes appends the binary encoding of a term to buf.
//
// Format: Kind(1) + len(value) uvarint + value, and for literals additionally
// len(datatype) uvarint + datatype + len(language) uvarint + language.
// Every component is length prefixed, so the encoding of a term is never a
// proper prefix of the encoding of a different term.
func AppendTermBytes(buf []byte, t Term) []byte {
	buf = append(buf, byte(t.kind))
	buf = appendString(buf, t.value)
	if t.kind == KindLiteral {
		buf = appendString(buf, t.datatype)
		buf = appendString(buf, t.language)
	}
	return buf
}

// TermBytes serializes a term to bytes
func TermBytes(t Term) []byte {
	return AppendTermBytes(nil, t)
}

// TermFromBytes decodes one term from the start of data and returns the
// number of bytes consumed
func TermFromBytes(data []byte) (Term, int, error) {
	if len(data) < 1 {
		return Term{}, 0, fmt.Errorf("term encoding too short")
	}
	kind := Kind(data[0])
	pos := 1

	switch kind {
	case KindIRI, KindBlankNode, KindVariable:
		value, n, err := readString(data[pos:])
		if err != nil {
			return Term{}, 0, err
		}
		pos += n
		return Term{kind: kind, value: value}, pos, nil

	case KindLiteral:
		var parts [3]string
		for i := range parts {
			s, n, err := readString(data[pos:])
			if err != nil {
				return Term{}, 0, err
			}
			parts[i] = s
			pos += n
		}
		return Term{kind: kind, value: parts[0], datatype: parts[1], language: parts[2]}, pos, nil

	default:
		return Term{}, 0, fmt.Errorf("unknown term kind: %d", kind)
	}
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func readString(data []byte) (string, int, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return "", 0, fmt.Errorf("invalid length prefix")
	}
	end := n + int(size)
	if end > len(data) {
		return "", 0, fmt.Errorf("string of length %d exceeds buffer", size)
	}
	return string(data[n:end]), end, nil
}
