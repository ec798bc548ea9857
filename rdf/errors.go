package rdf

import "errors"

var (
	// ErrInvalidTerm is returned when a term cannot be used in the requested position
	ErrInvalidTerm = errors.New("invalid term")

	// ErrPrefixRegistered is returned when registering a prefix twice
	ErrPrefixRegistered = errors.New("prefix already registered")

	// ErrUnknownPrefix is returned when expanding a qualified name with an unregistered prefix
	ErrUnknownPrefix = errors.New("unknown prefix")
)
