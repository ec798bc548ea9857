package query

import (
	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
)

// Options configures an Engine
type Options struct {
	// Namespaces resolves compact notation in pattern arguments.
	// Nil means rdf.DefaultNamespaces().
	Namespaces *rdf.Namespaces

	// Handler receives annotation events. Nil disables annotations.
	Handler annotations.Handler

	// Trace prints annotation events to stderr when no Handler is set
	Trace bool
}
