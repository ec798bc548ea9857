package rdf

// Well-known namespaces
const (
	NamespaceRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceXSD     = "http://www.w3.org/2001/XMLSchema#"
	NamespaceOWL     = "http://www.w3.org/2002/07/owl#"
	NamespaceSHACL   = "http://www.w3.org/ns/shacl#"
	NamespaceSKOS    = "http://www.w3.org/2004/02/skos/core#"
	NamespaceSchema  = "http://schema.org/"
	NamespaceDC      = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms = "http://purl.org/dc/terms/"
)

// Datatype IRIs
const (
	XSDString     = NamespaceXSD + "string"
	XSDBoolean    = NamespaceXSD + "boolean"
	XSDInteger    = NamespaceXSD + "integer"
	XSDFloat      = NamespaceXSD + "float"
	RDFLangString = NamespaceRDF + "langString"
)

// Frequently used terms
var (
	RDFType  = NewIRI(NamespaceRDF + "type")
	RDFFirst = NewIRI(NamespaceRDF + "first")
	RDFRest  = NewIRI(NamespaceRDF + "rest")
	RDFNil   = NewIRI(NamespaceRDF + "nil")
)
