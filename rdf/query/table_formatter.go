package query

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wbrown/janus-rdfquery/rdf"
)

// TableFormatter renders solutions as markdown tables
type TableFormatter struct {
	// MaxWidth is the maximum width for a cell; 0 disables truncation
	MaxWidth int
	// TruncateString is appended to truncated cells
	TruncateString string
	// Namespaces, when set, abbreviates IRIs to prefix:local
	Namespaces *rdf.Namespaces
}

// NewTableFormatter creates a new table formatter with default settings
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatSolutions formats solutions as a markdown table with one column per
// variable name (without sigil). Empty names means every bound variable in
// order of first appearance.
func (tf *TableFormatter) FormatSolutions(names []string, solutions []Solution) string {
	if len(names) == 0 {
		names = columnsOf(solutions)
	}
	if len(solutions) == 0 {
		if len(names) == 0 {
			return "_No solutions_"
		}
		return fmt.Sprintf("_Columns: %s_\n\n_No rows_", strings.Join(withSigil(names), " "))
	}

	tableString := &strings.Builder{}

	// Create alignment array with all columns using AlignNone for simple separators
	alignment := make([]tw.Align, len(names))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(withSigil(names))

	for _, sol := range solutions {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = tf.formatTerm(sol.Lookup(name))
		}
		table.Append(row)
	}
	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(solutions)))
	return tableString.String()
}

// formatTerm converts a term to a cell, abbreviating and truncating it
func (tf *TableFormatter) formatTerm(t rdf.Term) string {
	var s string
	switch {
	case t.IsZero():
		s = ""
	case t.IsIRI() && tf.Namespaces != nil:
		s = tf.abbreviate(t)
	default:
		s = t.String()
	}

	if tf.MaxWidth > 0 && len(s) > tf.MaxWidth {
		cut := tf.MaxWidth - len(tf.TruncateString)
		if cut < 0 {
			cut = 0
		}
		s = s[:cut] + tf.TruncateString
	}
	// Pipes would split markdown cells
	return strings.ReplaceAll(s, "|", `\|`)
}

// abbreviate renders an IRI as prefix:local using the longest matching namespace
func (tf *TableFormatter) abbreviate(t rdf.Term) string {
	best, bestNS := "", ""
	for _, prefix := range tf.Namespaces.Prefixes() {
		ns, _ := tf.Namespaces.Lookup(prefix)
		if strings.HasPrefix(t.Value(), ns) && len(ns) > len(bestNS) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return t.String()
	}
	return best + ":" + strings.TrimPrefix(t.Value(), bestNS)
}

func columnsOf(solutions []Solution) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, sol := range solutions {
		for _, name := range sol.Names() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

func withSigil(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = "?" + name
	}
	return out
}

// SolutionsString renders solutions with the default formatter
func SolutionsString(solutions []Solution) string {
	return NewTableFormatter().FormatSolutions(nil, solutions)
}
