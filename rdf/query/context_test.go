package query

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
)

func TestBaseContextHasNoCollector(t *testing.T) {
	e := testEngine(t, testGraph(t))
	assert.IsType(t, BaseContext{}, e.Context())
	assert.Nil(t, e.Context().Collector())
}

func TestMatchAnnotations(t *testing.T) {
	e, events := recordingEngine(t, testGraph(t))

	count, err := e.Query().Match("?s", "a", "ex:C").Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Equal(t, []string{
		annotations.MatchOpened,
		annotations.MatchExhausted,
		annotations.QueryClosed,
	}, eventNames(*events))

	exhausted := (*events)[1]
	assert.Equal(t, 2, exhausted.Data["match.count"])
	assert.False(t, exhausted.End.Before(exhausted.Start))

	closed := (*events)[2]
	assert.Equal(t, 2, closed.Data["solution.count"])
	assert.Contains(t, closed.Data["pipeline"], "Start → Match(")
	assert.Len(t, e.Context().Collector().Events(), 3)
}

func TestLimitAnnotations(t *testing.T) {
	e, events := recordingEngine(t, testGraph(t))

	_, err := e.Query().Match("?s", "a", "ex:C").Limit(1).Array()
	require.NoError(t, err)

	require.Equal(t, []string{
		annotations.MatchOpened,
		annotations.LimitReached,
		annotations.QueryClosed,
	}, eventNames(*events))
	assert.Equal(t, 1, (*events)[1].Data["limit"])
	assert.Equal(t, 1, (*events)[2].Data["solution.count"])
}

func TestOrderByAnnotations(t *testing.T) {
	e, events := recordingEngine(t, testGraph(t))

	_, err := e.Query().Match("?s", nil, nil).OrderBy("?s").Array()
	require.NoError(t, err)

	names := eventNames(*events)
	assert.Contains(t, names, annotations.OrderByMaterialized)
	for _, ev := range *events {
		if ev.Name == annotations.OrderByMaterialized {
			assert.Equal(t, "?s", ev.Data["variable"])
			assert.Equal(t, 5, ev.Data["solution.count"])
		}
	}
}

func TestEvaluationFailureReportedOnce(t *testing.T) {
	e, events := recordingEngine(t, testGraph(t))

	_, err := e.Query().
		PathString("?missing", "ex:next+", "?n").
		Filter(Bound("?n")).
		Limit(5).
		Array()
	assert.ErrorIs(t, err, ErrUnboundSubject)

	failures := 0
	for _, ev := range *events {
		if ev.Name == annotations.ErrorEvaluation {
			failures++
			assert.Contains(t, ev.Data["error"], "unbound subject")
		}
	}
	assert.Equal(t, 1, failures)
}

func TestTraceWritesToFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := annotations.NewPlainFormatter(&buf)
	e := NewEngine(testGraph(t), Options{
		Namespaces: testNamespaces(t),
		Handler:    formatter.Handle,
	})

	_, err := e.Query().Match("?s", "a", "ex:C").Limit(1).Array()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Limit(1) reached")
	assert.Contains(t, buf.String(), "closed after 1 solutions")
}
