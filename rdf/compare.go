package rdf

import (
	"strings"
)

// CompareTerms compares two terms and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// The order is total:
// - Absent terms sort before any concrete term, two absent terms are equal
// - Kind name first ("BlankNode" < "Literal" < "NamedNode" < "Variable")
// - Then lexical value
// - For literals, then datatype IRI, and language tag for rdf:langString
//
// Lexical values are compared as strings. "10" sorts before "2" even for
// xsd:integer literals; no numeric or temporal interpretation is applied.
func CompareTerms(left, right Term) int {
	// Handle absent terms
	if left.IsZero() && right.IsZero() {
		return 0
	}
	if left.IsZero() {
		return -1
	}
	if right.IsZero() {
		return 1
	}

	if c := strings.Compare(left.kind.String(), right.kind.String()); c != 0 {
		return c
	}
	if c := strings.Compare(left.value, right.value); c != 0 {
		return c
	}
	if left.kind != KindLiteral {
		return 0
	}
	if c := strings.Compare(left.datatype, right.datatype); c != 0 {
		return c
	}
	if left.datatype == RDFLangString {
		return strings.Compare(left.language, right.language)
	}
	return 0
}

// TermsEqual checks if two terms are structurally equal
func TermsEqual(left, right Term) bool {
	return left == right
}
