package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/wbrown/janus-rdfquery/rdf"
	"github.com/wbrown/janus-rdfquery/rdf/annotations"
	"github.com/wbrown/janus-rdfquery/rdf/graph"
	"github.com/wbrown/janus-rdfquery/rdf/query"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	DBPath   string
	Prefixes string
	Verbose  bool
}

// Wildcard is the command-line spelling of an unconstrained pattern position
const Wildcard = "_"

// NewRootCommand creates the rdfquery command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rdfquery",
		Short: "Lazy triple pattern and property path queries",
		Long: `Query a persistent triple store with lazily evaluated pipelines.

Terms use compact notation: ex:alice, <http://example.org/alice>, _:b1,
"text", "text"@en, 42, true. Variables start with '?' and '_' is a wildcard.`,
		SilenceErrors: true, // main logs the error
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "rdfquery.db", "database path")
	cmd.PersistentFlags().StringVar(&opts.Prefixes, "prefixes", "", "YAML file with extra namespace prefixes")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose mode (show query annotations)")

	cmd.AddCommand(newLoadCommand(opts))
	cmd.AddCommand(newMatchCommand(opts))
	cmd.AddCommand(newPathCommand(opts))
	cmd.AddCommand(newCountCommand(opts))

	return cmd
}

// session is an open database with an engine over it
type session struct {
	db     *graph.BadgerGraph
	ns     *rdf.Namespaces
	engine *query.Engine
}

func openSession(opts *RootOptions, stderr io.Writer) (*session, error) {
	ns := rdf.DefaultNamespaces()
	if opts.Prefixes != "" {
		f, err := os.Open(opts.Prefixes)
		if err != nil {
			return nil, fmt.Errorf("failed to open prefixes: %w", err)
		}
		defer f.Close()
		if err := ns.LoadYAML(f); err != nil {
			return nil, err
		}
	}

	db, err := graph.NewBadgerGraph(graph.BadgerOptions{Path: opts.DBPath})
	if err != nil {
		return nil, err
	}

	// Create annotation handler if verbose mode
	var handler annotations.Handler
	if opts.Verbose {
		handler = annotations.NewOutputFormatter(stderr).Handle
	}

	return &session{
		db:     db,
		ns:     ns,
		engine: query.NewEngine(db, query.Options{Namespaces: ns, Handler: handler}),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// printTable writes solutions as a markdown table with abbreviated IRIs
func (s *session) printTable(w io.Writer, solutions []query.Solution, elapsed time.Duration) {
	tf := query.NewTableFormatter()
	tf.Namespaces = s.ns
	fmt.Fprint(w, tf.FormatSolutions(nil, solutions))
	fmt.Fprintf(w, "_%.3fms_\n", float64(elapsed.Microseconds())/1000.0)
}

// patternArg converts a command-line term to a pattern argument
func patternArg(s string) any {
	if s == Wildcard {
		return nil
	}
	return s
}

func newLoadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>...",
		Short: "Load compact-notation triples into the database",
		Long: `Load lines of the form "subject predicate object ." into the database.
"@prefix p: <iri> ." lines apply to the rest of the file.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			for _, path := range args {
				n, err := loadFile(s, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d triples from %s\n", n, path)
			}
			return nil
		},
	}
}

func loadFile(s *session, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// File prefixes stay local to the file
	n, err := graph.LoadInto(s.db, f, s.ns.Clone())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func newMatchCommand(rootOpts *RootOptions) *cobra.Command {
	var orderBy string
	var limit int
	var distinct bool

	cmd := &cobra.Command{
		Use:   "match <subject> <predicate> <object>",
		Short: "Print the solutions of a triple pattern",
		Example: `  rdfquery match ?s a schema:Person
  rdfquery match ?s schema:name ?name --order ?name --limit 10`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			q := s.engine.Query().Match(patternArg(args[0]), patternArg(args[1]), patternArg(args[2]))
			q = modify(q, orderBy, limit, distinct)

			start := time.Now()
			solutions, err := q.Array()
			if err != nil {
				return err
			}
			s.printTable(cmd.OutOrStdout(), solutions, time.Since(start))
			return nil
		},
	}

	addModifierFlags(cmd, &orderBy, &limit, &distinct)
	return cmd
}

func newPathCommand(rootOpts *RootOptions) *cobra.Command {
	var orderBy string
	var limit int
	var distinct bool

	cmd := &cobra.Command{
		Use:   "path <subject> <path> [object]",
		Short: "Print the nodes reachable along a property path",
		Long: `Evaluate a property path from a subject. Paths use p, ^p, p1/p2, p1|p2,
p?, p* and p+ with parentheses for grouping. The object defaults to ?o.`,
		Example: `  rdfquery path ex:alice "ex:knows+"
  rdfquery path ex:alice "ex:knows/ex:name" ?name`,
		Args:         cobra.RangeArgs(2, 3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			object := "?o"
			if len(args) == 3 {
				object = args[2]
			}

			q := s.engine.Query().PathString(patternArg(args[0]), args[1], patternArg(object))
			q = modify(q, orderBy, limit, distinct)

			start := time.Now()
			solutions, err := q.Array()
			if err != nil {
				return err
			}
			s.printTable(cmd.OutOrStdout(), solutions, time.Since(start))
			return nil
		},
	}

	addModifierFlags(cmd, &orderBy, &limit, &distinct)
	return cmd
}

func newCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "count [subject predicate object]",
		Short:        "Count the triples matching a pattern, or all triples",
		Args:         countArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 0 {
				args = []string{Wildcard, Wildcard, Wildcard}
			}
			n, err := s.engine.Query().
				Match(patternArg(args[0]), patternArg(args[1]), patternArg(args[2])).
				Count()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(n))
			return nil
		},
	}
}

func countArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("accepts 0 or 3 arg(s), received %d", len(args))
	}
	return nil
}

func addModifierFlags(cmd *cobra.Command, orderBy *string, limit *int, distinct *bool) {
	cmd.Flags().StringVar(orderBy, "order", "", "sort solutions by this variable")
	cmd.Flags().IntVar(limit, "limit", -1, "maximum number of solutions (-1 for all)")
	cmd.Flags().BoolVar(distinct, "distinct", false, "drop duplicate solutions")
}

// modify appends the optional Distinct, OrderBy and Limit operators
func modify(q *query.Query, orderBy string, limit int, distinct bool) *query.Query {
	if distinct {
		q = q.Distinct()
	}
	if orderBy != "" {
		q = q.OrderBy(orderBy)
	}
	if limit >= 0 {
		q = q.Limit(limit)
	}
	return q
}
