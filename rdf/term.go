package rdf

import (
	"fmt"
	"strings"
)

// Kind is the intrinsic discriminant of a Term.
// The zero Kind marks an absent term.
type Kind uint8

const (
	KindNone Kind = iota
	KindIRI
	KindBlankNode
	KindLiteral
	KindVariable
)

// String returns the kind name used for canonical ordering
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "NamedNode"
	case KindBlankNode:
		return "BlankNode"
	case KindLiteral:
		return "Literal"
	case KindVariable:
		return "Variable"
	default:
		return ""
	}
}

// Term is an immutable RDF term.
//
// Terms are plain comparable values: two terms are equal exactly when kind,
// lexical value, datatype and language are equal, so == and map keys follow
// structural equality. The zero Term is the absent term.
type Term struct {
	kind     Kind
	value    string
	datatype string // datatype IRI, literals only
	language string // language tag, literals only
}

// NewIRI creates a named node
func NewIRI(iri string) Term {
	return Term{kind: KindIRI, value: iri}
}

// NewBlankNode creates a blank node with the given id (without the "_:" prefix)
func NewBlankNode(id string) Term {
	return Term{kind: KindBlankNode, value: strings.TrimPrefix(id, "_:")}
}

// NewLiteral creates a typed literal. An empty datatype means xsd:string.
func NewLiteral(value, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{kind: KindLiteral, value: value, datatype: datatype}
}

// NewLangLiteral creates a language-tagged string
func NewLangLiteral(value, language string) Term {
	return Term{
		kind:     KindLiteral,
		value:    value,
		datatype: RDFLangString,
		language: strings.ToLower(language),
	}
}

// NewVariable creates a query variable term. The name is stored without sigil.
func NewVariable(name string) Term {
	return Term{kind: KindVariable, value: strings.TrimPrefix(name, "?")}
}

// Helper constructors for common literal types
func String(s string) Term { return NewLiteral(s, XSDString) }
func Integer(i int64) Term { return NewLiteral(fmt.Sprintf("%d", i), XSDInteger) }
func Boolean(b bool) Term  { return NewLiteral(fmt.Sprintf("%t", b), XSDBoolean) }

// Kind returns the term kind
func (t Term) Kind() Kind { return t.kind }

// Value returns the lexical value (IRI, blank node id, literal lexical form or variable name)
func (t Term) Value() string { return t.value }

// Datatype returns the datatype IRI of a literal, or "" for other kinds
func (t Term) Datatype() string { return t.datatype }

// Language returns the language tag of a literal, or ""
func (t Term) Language() string { return t.language }

func (t Term) IsIRI() bool       { return t.kind == KindIRI }
func (t Term) IsBlankNode() bool { return t.kind == KindBlankNode }
func (t Term) IsLiteral() bool   { return t.kind == KindLiteral }
func (t Term) IsVariable() bool  { return t.kind == KindVariable }

// IsZero reports whether the term is absent
func (t Term) IsZero() bool { return t.kind == KindNone }

// IsResource reports whether the term may appear in subject position
func (t Term) IsResource() bool { return t.kind == KindIRI || t.kind == KindBlankNode }

// Equal checks structural equality
func (t Term) Equal(other Term) bool {
	return t == other
}

// String returns the N-Triples style representation
func (t Term) String() string {
	switch t.kind {
	case KindIRI:
		return "<" + t.value + ">"
	case KindBlankNode:
		return "_:" + t.value
	case KindLiteral:
		lex := quoteLiteral(t.value)
		if t.language != "" {
			return lex + "@" + t.language
		}
		if t.datatype == XSDString {
			return lex
		}
		return lex + "^^<" + t.datatype + ">"
	case KindVariable:
		return "?" + t.value
	default:
		return "nil"
	}
}

func quoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// LocalName returns the part of an IRI after the last '#' or '/'
func LocalName(iri string) (string, error) {
	index := strings.LastIndex(iri, "#")
	if index < 0 {
		index = strings.LastIndex(iri, "/")
	}
	if index < 0 {
		return "", fmt.Errorf("cannot get local name of %s", iri)
	}
	return iri[index+1:], nil
}
