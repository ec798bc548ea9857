package query

import (
	"errors"

	"github.com/wbrown/janus-rdfquery/rdf/path"
)

// Query evaluation errors. Callers match these with errors.Is; returned
// errors wrap them with the offending operator and value.
var (
	// ErrInvalidVariableName is returned for variable names without the '?' sigil or without a name
	ErrInvalidVariableName = errors.New("invalid variable name")

	// ErrTypeMismatch is returned when a non-IRI resolves into a predicate position
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnboundSubject is returned when a required subject has no value
	ErrUnboundSubject = errors.New("unbound subject")

	// ErrUnboundPredicate is returned when a required predicate has no value
	ErrUnboundPredicate = errors.New("unbound predicate")

	// ErrUnsupportedPath is returned for malformed path expressions
	ErrUnsupportedPath = path.ErrUnsupportedPath

	// ErrEvaluation is returned when pulling from a closed query
	ErrEvaluation = errors.New("evaluation error")

	// ErrAlreadyBound is returned when Bind would change an existing binding
	ErrAlreadyBound = errors.New("variable already bound")
)
