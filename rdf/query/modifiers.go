package query

import (
	"fmt"
	"sort"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// filterOp drops solutions rejected by a predicate
type filterOp struct {
	upstream *Query
	fn       FilterFunc
}

func (f *filterOp) next() (Solution, bool, error) {
	for {
		sol, ok, err := f.upstream.NextSolution()
		if err != nil || !ok {
			return Solution{}, false, err
		}
		pass, err := f.fn(sol)
		if err != nil {
			return Solution{}, false, fmt.Errorf("filter: %w", err)
		}
		if pass {
			return sol, true, nil
		}
	}
}

func (f *filterOp) close() error { return nil }

// bindOp extends each solution with a computed binding
type bindOp struct {
	upstream *Query
	variable string
	fn       BindFunc
}

func (b *bindOp) next() (Solution, bool, error) {
	sol, ok, err := b.upstream.NextSolution()
	if err != nil || !ok {
		return Solution{}, false, err
	}

	t, err := b.fn(sol)
	if err != nil {
		return Solution{}, false, fmt.Errorf("bind ?%s: %w", b.variable, err)
	}
	if t.IsZero() {
		return sol, true, nil
	}
	if t.IsVariable() {
		return Solution{}, false, fmt.Errorf("%w: bind ?%s produced variable %s", rdf.ErrInvalidTerm, b.variable, t)
	}
	if existing, bound := sol.Get(b.variable); bound && existing != t {
		return Solution{}, false, fmt.Errorf("%w: ?%s is %s, cannot bind %s", ErrAlreadyBound, b.variable, existing, t)
	}
	return sol.With(b.variable, t), true, nil
}

func (b *bindOp) close() error { return nil }

// limitOp passes through at most limit solutions. Reaching the limit
// closes the upstream immediately.
type limitOp struct {
	upstream  *Query
	ctx       Context
	limit     int
	remaining int
	done      bool
}

func (l *limitOp) next() (Solution, bool, error) {
	if l.done {
		return Solution{}, false, nil
	}
	if l.remaining <= 0 {
		return Solution{}, false, l.finish()
	}

	sol, ok, err := l.upstream.NextSolution()
	if err != nil {
		return Solution{}, false, err
	}
	if !ok {
		l.done = true
		return Solution{}, false, nil
	}

	l.remaining--
	if l.remaining == 0 {
		if err := l.finish(); err != nil {
			return Solution{}, false, err
		}
	}
	return sol, true, nil
}

func (l *limitOp) finish() error {
	l.done = true
	l.ctx.LimitReached(l.limit)
	return l.upstream.Close()
}

func (l *limitOp) close() error { return nil }

// distinctOp drops solutions with an already produced binding set
type distinctOp struct {
	upstream *Query
	seen     map[string]struct{}
}

func (d *distinctOp) next() (Solution, bool, error) {
	for {
		sol, ok, err := d.upstream.NextSolution()
		if err != nil || !ok {
			return Solution{}, false, err
		}
		key := sol.Key()
		if _, dup := d.seen[key]; dup {
			continue
		}
		d.seen[key] = struct{}{}
		return sol, true, nil
	}
}

func (d *distinctOp) close() error {
	d.seen = nil
	return nil
}

// orderByOp materializes the upstream on first pull and replays it sorted
type orderByOp struct {
	upstream *Query
	ctx      Context
	variable string
	buffer   []Solution
	pos      int
	sorted   bool
}

func (o *orderByOp) next() (Solution, bool, error) {
	if !o.sorted {
		buffer, err := o.ctx.MaterializeOrderBy("?"+o.variable, o.materialize)
		if err != nil {
			return Solution{}, false, err
		}
		o.buffer = buffer
		o.sorted = true
	}

	if o.pos >= len(o.buffer) {
		return Solution{}, false, nil
	}
	sol := o.buffer[o.pos]
	o.pos++
	return sol, true, nil
}

func (o *orderByOp) materialize() ([]Solution, error) {
	var buffer []Solution
	for {
		sol, ok, err := o.upstream.NextSolution()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		buffer = append(buffer, sol)
	}

	sort.SliceStable(buffer, func(i, j int) bool {
		return rdf.CompareTerms(buffer[i].Lookup(o.variable), buffer[j].Lookup(o.variable)) < 0
	})
	return buffer, nil
}

func (o *orderByOp) close() error {
	o.buffer = nil
	return nil
}
