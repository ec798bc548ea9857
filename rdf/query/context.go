package query

import (
	"time"

	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
	"github.com/wbrown/janus-rdfquery/rdf/path"
)

// Context provides clean annotation points for query evaluation tracking.
type Context interface {
	// Pattern matching
	MatchOpened(pattern string) time.Time
	MatchExhausted(pattern string, opened time.Time, matches int)

	// Property paths
	EvaluatePath(expr path.Expr, subject rdf.Term, fn func() (*rdf.NodeSet, error)) (*rdf.NodeSet, error)

	// Materializing and limiting operators
	MaterializeOrderBy(variable string, fn func() ([]Solution, error)) ([]Solution, error)
	LimitReached(limit int)

	// Lifecycle
	QueryClosed(pipeline string, started time.Time, solutions int)
	EvaluationFailed(operator string, err error)

	// Get underlying collector
	Collector() *annotations.Collector
}

// NewContext creates an appropriate context based on whether annotations are needed.
func NewContext(handler annotations.Handler) Context {
	if handler == nil {
		return BaseContext{}
	}
	return &AnnotatedContext{
		collector: annotations.NewCollector(handler),
	}
}

// BaseContext provides a no-op implementation with zero overhead.
type BaseContext struct{}

func (BaseContext) MatchOpened(pattern string) time.Time { return time.Time{} }

func (BaseContext) MatchExhausted(pattern string, opened time.Time, matches int) {}

func (BaseContext) EvaluatePath(expr path.Expr, subject rdf.Term, fn func() (*rdf.NodeSet, error)) (*rdf.NodeSet, error) {
	return fn()
}

func (BaseContext) MaterializeOrderBy(variable string, fn func() ([]Solution, error)) ([]Solution, error) {
	return fn()
}

func (BaseContext) LimitReached(limit int) {}

func (BaseContext) QueryClosed(pipeline string, started time.Time, solutions int) {}

func (BaseContext) EvaluationFailed(operator string, err error) {}

func (BaseContext) Collector() *annotations.Collector { return nil }

// AnnotatedContext provides full annotation tracking
type AnnotatedContext struct {
	collector *annotations.Collector
}

func (c *AnnotatedContext) MatchOpened(pattern string) time.Time {
	start := time.Now()
	c.collector.Add(annotations.Event{
		Name:  annotations.MatchOpened,
		Start: start,
		Data: map[string]interface{}{
			"pattern": pattern,
		},
	})
	return start
}

func (c *AnnotatedContext) MatchExhausted(pattern string, opened time.Time, matches int) {
	c.collector.AddTiming(annotations.MatchExhausted, opened, map[string]interface{}{
		"pattern":     pattern,
		"match.count": matches,
	})
}

func (c *AnnotatedContext) EvaluatePath(expr path.Expr, subject rdf.Term, fn func() (*rdf.NodeSet, error)) (*rdf.NodeSet, error) {
	start := time.Now()
	nodes, err := fn()

	data := map[string]interface{}{
		"path":       expr.String(),
		"subject":    subject.String(),
		"node.count": 0,
		"success":    err == nil,
	}
	if nodes != nil {
		data["node.count"] = nodes.Len()
	}
	if err != nil {
		data["error"] = err.Error()
	}

	c.collector.AddTiming(annotations.PathEvaluated, start, data)
	return nodes, err
}

func (c *AnnotatedContext) MaterializeOrderBy(variable string, fn func() ([]Solution, error)) ([]Solution, error) {
	start := time.Now()
	solutions, err := fn()

	c.collector.AddTiming(annotations.OrderByMaterialized, start, map[string]interface{}{
		"variable":       variable,
		"solution.count": len(solutions),
		"success":        err == nil,
	})
	return solutions, err
}

func (c *AnnotatedContext) LimitReached(limit int) {
	c.collector.Add(annotations.Event{
		Name:  annotations.LimitReached,
		Start: time.Now(),
		Data: map[string]interface{}{
			"limit": limit,
		},
	})
}

func (c *AnnotatedContext) QueryClosed(pipeline string, started time.Time, solutions int) {
	if started.IsZero() {
		started = time.Now()
	}
	c.collector.AddTiming(annotations.QueryClosed, started, map[string]interface{}{
		"pipeline":       pipeline,
		"solution.count": solutions,
	})
}

func (c *AnnotatedContext) EvaluationFailed(operator string, err error) {
	c.collector.Add(annotations.Event{
		Name:  annotations.ErrorEvaluation,
		Start: time.Now(),
		Data: map[string]interface{}{
			"operator": operator,
			"error":    err.Error(),
		},
	})
}

func (c *AnnotatedContext) Collector() *annotations.Collector {
	return c.collector
}
