package rdf

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	integerPattern = regexp.MustCompile(`^\d+$`)
	floatPattern   = regexp.MustCompile(`^\d+\.\d+$`)
	absoluteIRI    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:[^\s<>"{}|\\^` + "`" + `]*$`)
)

// Namespaces is a prefix registry for compact notation.
// Each engine owns its own registry; reads are safe for concurrent use.
type Namespaces struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// NewNamespaces creates an empty registry
func NewNamespaces() *Namespaces {
	return &Namespaces{prefixes: make(map[string]string)}
}

// DefaultNamespaces creates a registry preloaded with the common vocabularies
func DefaultNamespaces() *Namespaces {
	ns := NewNamespaces()
	for prefix, iri := range map[string]string{
		"dc":      NamespaceDC,
		"dcterms": NamespaceDCTerms,
		"rdf":     NamespaceRDF,
		"rdfs":    NamespaceRDFS,
		"schema":  NamespaceSchema,
		"sh":      NamespaceSHACL,
		"skos":    NamespaceSKOS,
		"owl":     NamespaceOWL,
		"xsd":     NamespaceXSD,
	} {
		ns.prefixes[prefix] = iri
	}
	return ns
}

// Register binds a prefix to a namespace IRI
func (n *Namespaces) Register(prefix, namespace string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.prefixes[prefix]; ok {
		return fmt.Errorf("%w: %s", ErrPrefixRegistered, prefix)
	}
	n.prefixes[prefix] = namespace
	return nil
}

// Lookup returns the namespace bound to a prefix
func (n *Namespaces) Lookup(prefix string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ns, ok := n.prefixes[prefix]
	return ns, ok
}

// Prefixes returns the registered prefixes in sorted order
func (n *Namespaces) Prefixes() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.prefixes))
	for p := range n.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the registry
func (n *Namespaces) Clone() *Namespaces {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c := NewNamespaces()
	for p, ns := range n.prefixes {
		c.prefixes[p] = ns
	}
	return c
}

// Expand resolves a qualified name such as "owl:Thing" into an IRI
func (n *Namespaces) Expand(qname string) (Term, error) {
	col := strings.Index(qname, ":")
	if col <= 0 {
		return Term{}, fmt.Errorf("%w: %q is not a qualified name", ErrInvalidTerm, qname)
	}
	ns, ok := n.Lookup(qname[:col])
	if !ok {
		return Term{}, fmt.Errorf("%w: %s", ErrUnknownPrefix, qname[:col])
	}
	return NewIRI(ns + qname[col+1:]), nil
}

// Parse turns compact notation into a term:
//   - true / false             xsd:boolean
//   - 42                       xsd:integer
//   - 4.2                      xsd:float
//   - prefix:local             IRI via the registry
//   - http://example.org/x     absolute IRI
//   - <http://example.org/x>   IRI
//   - _:b1                     blank node
//   - "text", "text"@en, "text"^^xsd:date
//
// Anything else becomes a plain string literal.
func (n *Namespaces) Parse(str string) (Term, error) {
	switch {
	case str == "":
		return Term{}, fmt.Errorf("%w: empty term", ErrInvalidTerm)
	case str == "true" || str == "false":
		return NewLiteral(str, XSDBoolean), nil
	case integerPattern.MatchString(str):
		return NewLiteral(str, XSDInteger), nil
	case floatPattern.MatchString(str):
		return NewLiteral(str, XSDFloat), nil
	case strings.HasPrefix(str, "<"):
		if !strings.HasSuffix(str, ">") || len(str) < 3 {
			return Term{}, fmt.Errorf("%w: unterminated IRI %s", ErrInvalidTerm, str)
		}
		return NewIRI(str[1 : len(str)-1]), nil
	case strings.HasPrefix(str, "_:"):
		if len(str) == 2 {
			return Term{}, fmt.Errorf("%w: empty blank node id", ErrInvalidTerm)
		}
		return NewBlankNode(str[2:]), nil
	case strings.HasPrefix(str, `"`):
		return n.parseQuotedLiteral(str)
	}

	if col := strings.Index(str, ":"); col > 0 {
		if ns, ok := n.Lookup(str[:col]); ok {
			return NewIRI(ns + str[col+1:]), nil
		}
		if absoluteIRI.MatchString(str) {
			return NewIRI(str), nil
		}
	}
	return NewLiteral(str, XSDString), nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and constants.
func (n *Namespaces) MustParse(str string) Term {
	t, err := n.Parse(str)
	if err != nil {
		panic(err)
	}
	return t
}

func (n *Namespaces) parseQuotedLiteral(str string) (Term, error) {
	end := -1
	escaped := false
	var lex strings.Builder
	for i := 1; i < len(str); i++ {
		ch := str[i]
		if escaped {
			switch ch {
			case 'n':
				lex.WriteByte('\n')
			case 't':
				lex.WriteByte('\t')
			case 'r':
				lex.WriteByte('\r')
			default:
				lex.WriteByte(ch)
			}
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			end = i
			break
		}
		lex.WriteByte(ch)
	}
	if end < 0 {
		return Term{}, fmt.Errorf("%w: unterminated literal %s", ErrInvalidTerm, str)
	}

	rest := str[end+1:]
	switch {
	case rest == "":
		return NewLiteral(lex.String(), XSDString), nil
	case strings.HasPrefix(rest, "@") && len(rest) > 1:
		return NewLangLiteral(lex.String(), rest[1:]), nil
	case strings.HasPrefix(rest, "^^"):
		dt, err := n.Parse(rest[2:])
		if err != nil {
			return Term{}, err
		}
		if !dt.IsIRI() {
			return Term{}, fmt.Errorf("%w: datatype must be an IRI in %s", ErrInvalidTerm, str)
		}
		return NewLiteral(lex.String(), dt.Value()), nil
	default:
		return Term{}, fmt.Errorf("%w: unexpected %q after literal", ErrInvalidTerm, rest)
	}
}

// prefixFile is the YAML layout accepted by LoadYAML
type prefixFile struct {
	Prefixes map[string]string `yaml:"prefixes"`
}

// LoadYAML registers every prefix from a YAML document of the form
//
//	prefixes:
//	  ex: http://example.org/
func (n *Namespaces) LoadYAML(r io.Reader) error {
	var file prefixFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode prefixes: %w", err)
	}

	prefixes := make([]string, 0, len(file.Prefixes))
	for p := range file.Prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	for _, p := range prefixes {
		if err := n.Register(p, file.Prefixes[p]); err != nil {
			return err
		}
	}
	return nil
}

// NewFreshBlankNode creates a blank node with a globally unique id
func NewFreshBlankNode() Term {
	return NewBlankNode("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}
