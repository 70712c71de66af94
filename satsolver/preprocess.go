package satsolver

import "github.com/cbarrett/ic3go/logic"

// maxResolventsPerVar bounds bounded variable elimination: a variable is
// only eliminated if the product of its positive and negative occurrence
// counts (the most resolvents eliminating it can add) is at most this
// value. Mirrors MiniSat's SimpSolver default elimination growth
// cap; kept small since model-building runs elimination once over a
// modest transition-relation CNF, not a general-purpose preprocessing
// pipeline.
const maxResolventsPerVar = 16

// NewSimp returns a Preprocessing solver: a plain Solver with
// SetFrozen/Eliminate/Clauses layered on top.
func NewSimp() *Solver { return New() }

// Eliminate implements Preprocessing.
func (s *Solver) Eliminate(turnOffAfter bool) {
	s.bump()
	s.backtrackToLevel(0)
	for v := 0; v < len(s.assign); v++ {
		if s.frozen[v] || s.assign[v] != assignUnassigned {
			continue
		}
		s.tryEliminate(logic.Var(v))
	}
	if turnOffAfter {
		for i := range s.frozen {
			s.frozen[i] = true
		}
	}
}

// tryEliminate resolves away v if it appears in few enough clauses and the
// resolvents don't exceed maxResolventsPerVar; otherwise it leaves v alone.
func (s *Solver) tryEliminate(v logic.Var) {
	pos := s.occurrences(logic.NewLit(v, true))
	neg := s.occurrences(logic.NewLit(v, false))
	if len(pos) == 0 || len(neg) == 0 {
		return // pure literal or unused; nothing to resolve against
	}
	if len(pos)*len(neg) > maxResolventsPerVar {
		return
	}
	var resolvents []logic.Clause
	for _, p := range pos {
		for _, n := range neg {
			res, tautology := resolve(p.lits, n.lits, v)
			if tautology {
				continue
			}
			resolvents = append(resolvents, res)
		}
	}
	for _, cl := range pos {
		cl.dead = true
	}
	for _, cl := range neg {
		cl.dead = true
	}
	for _, r := range resolvents {
		s.addClauseAtLevelZero(r)
	}
}

// occurrences returns the live clauses containing l (by linear scan; the
// clause database is small enough at model-build time that a dedicated
// occurrence index isn't worth the bookkeeping).
func (s *Solver) occurrences(l logic.Lit) []*clause {
	var out []*clause
	for _, cl := range s.clauses {
		if cl.dead {
			continue
		}
		for _, x := range cl.lits {
			if x == l {
				out = append(out, cl)
				break
			}
		}
	}
	return out
}

// resolve resolves clauses a and b on variable v, returning the resolvent
// and whether it is a tautology (and so can be discarded).
func resolve(a, b []logic.Lit, v logic.Var) (logic.Clause, bool) {
	seen := make(map[logic.Lit]bool, len(a)+len(b))
	var out logic.Clause
	for _, l := range a {
		if l.Var() == v {
			continue
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range b {
		if l.Var() == v {
			continue
		}
		if seen[l.Not()] {
			return nil, true
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out, false
}
