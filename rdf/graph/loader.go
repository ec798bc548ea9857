package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// Adder is a graph that accepts new triples
type Adder interface {
	Add(triples ...rdf.Triple) error
}

// Load reads compact-notation lines of the form
//
//	subject predicate object .
//
// and returns the triples in input order. Terms use rdf.Namespaces.Parse
// notation; "a" in predicate position means rdf:type and "[]" is a fresh
// blank node. Blank lines and lines starting with '#' are skipped.
// "@prefix p: <iri> ." lines register a prefix on ns.
func Load(r io.Reader, ns *rdf.Namespaces) ([]rdf.Triple, error) {
	if ns == nil {
		ns = rdf.DefaultNamespaces()
	}

	var triples []rdf.Triple
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := splitFields(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		fields = trimTerminator(fields)

		if fields[0] == "@prefix" {
			if err := loadPrefix(ns, fields); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: %w: expected 3 terms, got %d", lineNo, rdf.ErrInvalidTerm, len(fields))
		}
		t, err := parseTriple(ns, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		triples = append(triples, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return triples, nil
}

// LoadInto reads triples with Load and adds them to g
func LoadInto(g Adder, r io.Reader, ns *rdf.Namespaces) (int, error) {
	triples, err := Load(r, ns)
	if err != nil {
		return 0, err
	}
	if err := g.Add(triples...); err != nil {
		return 0, err
	}
	return len(triples), nil
}

func loadPrefix(ns *rdf.Namespaces, fields []string) error {
	if len(fields) != 3 || !strings.HasSuffix(fields[1], ":") {
		return fmt.Errorf("%w: malformed @prefix directive", rdf.ErrInvalidTerm)
	}
	prefix := strings.TrimSuffix(fields[1], ":")
	iri := fields[2]
	if !strings.HasPrefix(iri, "<") || !strings.HasSuffix(iri, ">") {
		return fmt.Errorf("%w: @prefix namespace must be <iri>", rdf.ErrInvalidTerm)
	}
	iri = iri[1 : len(iri)-1]

	// Repeating an identical declaration is harmless
	if existing, ok := ns.Lookup(prefix); ok && existing == iri {
		return nil
	}
	return ns.Register(prefix, iri)
}

func parseTriple(ns *rdf.Namespaces, fields []string) (rdf.Triple, error) {
	var terms [3]rdf.Term
	for i, field := range fields {
		switch {
		case field == "[]":
			terms[i] = rdf.NewFreshBlankNode()
		case i == 1 && field == "a":
			terms[i] = rdf.RDFType
		default:
			term, err := ns.Parse(field)
			if err != nil {
				return rdf.Triple{}, err
			}
			terms[i] = term
		}
	}
	return rdf.NewTriple(terms[0], terms[1], terms[2])
}

// trimTerminator drops the statement's closing '.', whether it stands
// alone or is attached to the last term
func trimTerminator(fields []string) []string {
	n := len(fields)
	last := fields[n-1]
	switch {
	case n > 1 && last == ".":
		return fields[:n-1]
	case len(last) > 1 && strings.HasSuffix(last, "."):
		fields[n-1] = strings.TrimSuffix(last, ".")
	}
	return fields
}

// splitFields splits a line on whitespace, keeping quoted literals whole
func splitFields(line string) ([]string, error) {
	var fields []string
	i := 0
	for i < len(line) {
		if line[i] == ' ' || line[i] == '\t' {
			i++
			continue
		}
		start := i
		if line[i] == '"' {
			i++
			for i < len(line) && line[i] != '"' {
				if line[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(line) {
				return nil, fmt.Errorf("%w: unterminated literal", rdf.ErrInvalidTerm)
			}
			i++ // closing quote
		}
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		fields = append(fields, line[start:i])
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty statement", rdf.ErrInvalidTerm)
	}
	return fields, nil
}
