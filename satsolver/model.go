package satsolver

import "github.com/cbarrett/ic3go/logic"

// Model is a satisfying assignment tied to the solver generation at which
// it was produced. Per spec.md §4.C, reading it after a mutating call
// panics rather than silently returning stale data, standing in for the
// borrow-checked lifetime a Rust implementation gets for free.
type Model struct {
	s   *Solver
	gen uint64
}

// Value reports the truth value assigned to l's variable, respecting l's
// polarity.
func (m *Model) Value(l logic.Lit) bool {
	m.checkGen()
	v := m.s.assign[l.Var()]
	return (v == assignTrue) == l.Polarity()
}

// VarValue reports the truth value assigned to v.
func (m *Model) VarValue(v logic.Var) bool {
	m.checkGen()
	return m.s.assign[v] == assignTrue
}

func (m *Model) checkGen() {
	if m.gen != m.s.generation {
		panic("satsolver: Model accessed after a later mutating call")
	}
}

// Core is the subset of the assumptions passed to Solve that sufficed to
// prove unsatisfiability. It is sound but not guaranteed minimal: see
// search.go's Solve and unsatResult for the extraction strategy and its
// tradeoffs.
type Core struct {
	s    *Solver
	gen  uint64
	lits map[logic.Lit]bool
}

// Has reports whether l is part of the core.
func (c *Core) Has(l logic.Lit) bool {
	c.checkGen()
	return c.lits[l]
}

// Lits returns the core's literals in no particular order.
func (c *Core) Lits() []logic.Lit {
	c.checkGen()
	out := make([]logic.Lit, 0, len(c.lits))
	for l := range c.lits {
		out = append(out, l)
	}
	return out
}

func (c *Core) checkGen() {
	if c.gen != c.s.generation {
		panic("satsolver: Core accessed after a later mutating call")
	}
}
