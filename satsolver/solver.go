package satsolver

import "github.com/cbarrett/ic3go/logic"

const (
	assignUnassigned int8 = iota
	assignTrue
	assignFalse
)

// Solver is a watched-literal, assumption-based incremental SAT solver.
// Its search loop (search.go) is cespare/saturday's DPLL with chronological
// backtracking, generalized to: (a) run repeatedly across many Solve calls
// against an accumulating clause database, (b) treat a Solve call's
// assumptions as an unflippable forced prefix on the decision stack, and
// (c) recover a (non-minimal but sound) unsat core from that prefix when
// the prefix itself is responsible for the conflict.
type Solver struct {
	clauses []*clause
	watches [][]*clause // indexed by litIndex(l): clauses watching l becoming false

	assign []int8
	reason []*clause // antecedent clause for each var's current assignment, nil for decisions/assumptions

	trail    []logic.Lit
	trailLim []int // trail index at which each decision level begins

	decisionIsAssumption []bool
	decisionLit          []logic.Lit
	decisionTried        []bool // for free decisions: both polarities attempted

	qhead int

	polarityPref []int8 // assignUnassigned (no preference), assignTrue, or assignFalse, per var
	frozen       []bool

	unsat bool // a level-0 contradiction was asserted; every future Solve is trivially unsat

	generation uint64
}

// New returns a solver with no variables and no clauses.
func New() *Solver {
	return &Solver{}
}

func (s *Solver) bump() { s.generation++ }

// NumVar implements Incremental.
func (s *Solver) NumVar() int { return len(s.assign) }

// NewVar implements Incremental.
func (s *Solver) NewVar() logic.Var {
	s.bump()
	s.backtrackToLevel(0)
	v := logic.Var(len(s.assign))
	s.assign = append(s.assign, assignUnassigned)
	s.reason = append(s.reason, nil)
	s.polarityPref = append(s.polarityPref, assignUnassigned)
	s.frozen = append(s.frozen, false)
	// Two fresh watch-list slots (positive and negative literal of v).
	s.watches = append(s.watches, nil, nil)
	return v
}

// AddClause implements Incremental.
func (s *Solver) AddClause(c logic.Clause) {
	s.bump()
	s.backtrackToLevel(0)
	s.addClauseAtLevelZero(c.Clone())
}

// addClauseAtLevelZero installs lits as a new clause, simplifying and
// propagating at decision level 0. A clause that is already false under
// the level-0 assignment marks the solver permanently unsat; every
// subsequent Solve call then returns unsat with no further search.
func (s *Solver) addClauseAtLevelZero(lits []logic.Lit) {
	// Drop literals already falsified at level 0; a literal already true
	// at level 0 makes the whole clause satisfied and inert.
	kept := lits[:0]
	for _, l := range lits {
		switch s.valueAt(l) {
		case 1: // already true
			return
		case -1: // already false, drop
			continue
		default:
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		s.unsat = true
		return
	}
	cl := s.registerClause(kept)
	if len(kept) == 1 {
		s.enqueue(kept[0], nil)
		if conflict := s.propagate(); conflict != nil {
			s.unsat = true
		}
		return
	}
	// watches[litIndex(x)] holds clauses whose watched literal is x, i.e.
	// clauses that must be revisited when x becomes false.
	s.watches[litIndex(cl.lits[0])] = append(s.watches[litIndex(cl.lits[0])], cl)
	s.watches[litIndex(cl.lits[1])] = append(s.watches[litIndex(cl.lits[1])], cl)
}

func (s *Solver) registerClause(lits []logic.Lit) *clause {
	cl := &clause{lits: lits}
	s.clauses = append(s.clauses, cl)
	return cl
}

// valueAt reports l's current truth value: 1 true, -1 false, 0 unassigned.
func (s *Solver) valueAt(l logic.Lit) int {
	switch s.assign[l.Var()] {
	case assignUnassigned:
		return 0
	case assignTrue:
		if l.Polarity() {
			return 1
		}
		return -1
	default:
		if l.Polarity() {
			return -1
		}
		return 1
	}
}

// SetPolarity implements Incremental.
func (s *Solver) SetPolarity(v logic.Var, pol *bool) {
	s.bump()
	if pol == nil {
		s.polarityPref[v] = assignUnassigned
		return
	}
	if *pol {
		s.polarityPref[v] = assignTrue
	} else {
		s.polarityPref[v] = assignFalse
	}
}

// ReleaseVar implements Incremental: asserting l permanently satisfies any
// clause guarded by l as an activation literal, retiring it.
func (s *Solver) ReleaseVar(l logic.Lit) {
	s.AddClause(logic.Clause{l})
}

// Simplify implements Incremental by dropping clauses already satisfied by
// a level-0 unit literal.
func (s *Solver) Simplify() {
	s.bump()
	s.backtrackToLevel(0)
	for _, cl := range s.clauses {
		if cl.dead {
			continue
		}
		for _, l := range cl.lits {
			if s.valueAt(l) == 1 {
				cl.dead = true
				break
			}
		}
	}
}

// SetFrozen implements Preprocessing.
func (s *Solver) SetFrozen(v logic.Var, frozen bool) {
	s.frozen[v] = frozen
}

// Clauses implements Preprocessing.
func (s *Solver) Clauses() logic.Cnf {
	out := make(logic.Cnf, 0, len(s.clauses))
	for _, cl := range s.clauses {
		if cl.dead {
			continue
		}
		out = append(out, logic.Clause(cl.lits).Clone())
	}
	return out
}
