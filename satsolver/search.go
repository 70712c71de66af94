package satsolver

import "github.com/cbarrett/ic3go/logic"

// decisionLevel returns the current number of open decisions (assumption
// or free).
func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// enqueue assigns l true with the given antecedent (nil for a decision).
func (s *Solver) enqueue(l logic.Lit, reason *clause) {
	if l.Polarity() {
		s.assign[l.Var()] = assignTrue
	} else {
		s.assign[l.Var()] = assignFalse
	}
	s.reason[l.Var()] = reason
	s.trail = append(s.trail, l)
}

// undoOne pops the most recent trail entry, unassigning its variable.
func (s *Solver) undoOne() {
	n := len(s.trail) - 1
	l := s.trail[n]
	s.trail = s.trail[:n]
	s.assign[l.Var()] = assignUnassigned
	s.reason[l.Var()] = nil
}

// backtrackToLevel undoes decisions (and their implications) down to level.
func (s *Solver) backtrackToLevel(level int) {
	for len(s.trailLim) > level {
		target := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > target {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
		s.decisionIsAssumption = s.decisionIsAssumption[:len(s.decisionIsAssumption)-1]
		s.decisionLit = s.decisionLit[:len(s.decisionLit)-1]
		s.decisionTried = s.decisionTried[:len(s.decisionTried)-1]
	}
	s.qhead = len(s.trail)
}

// pushDecision opens a new decision level asserting l.
func (s *Solver) pushDecision(l logic.Lit, isAssumption bool) {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.decisionIsAssumption = append(s.decisionIsAssumption, isAssumption)
	s.decisionLit = append(s.decisionLit, l)
	s.decisionTried = append(s.decisionTried, isAssumption)
	s.enqueue(l, nil)
}

// propagate runs unit propagation (BCP) via the watched-literal scheme and
// returns the conflicting clause, or nil if it saturates without conflict.
func (s *Solver) propagate() *clause {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		falsified := p.Not()
		ws := s.watches[litIndex(falsified)]
		kept := ws[:0]
		for i := 0; i < len(ws); i++ {
			cl := ws[i]
			if cl.dead {
				continue
			}
			// Normalize so lits[0] is the other watch.
			if cl.lits[0] == falsified {
				cl.lits[0], cl.lits[1] = cl.lits[1], cl.lits[0]
			}
			if s.valueAt(cl.lits[0]) == 1 {
				kept = append(kept, cl)
				continue
			}
			replaced := false
			for j := 2; j < len(cl.lits); j++ {
				if s.valueAt(cl.lits[j]) != -1 {
					cl.lits[1], cl.lits[j] = cl.lits[j], cl.lits[1]
					s.watches[litIndex(cl.lits[1])] = append(s.watches[litIndex(cl.lits[1])], cl)
					replaced = true
					break
				}
			}
			if replaced {
				continue
			}
			kept = append(kept, cl)
			switch s.valueAt(cl.lits[0]) {
			case -1:
				s.watches[litIndex(falsified)] = append(kept, ws[i+1:]...)
				return cl
			case 0:
				s.enqueue(cl.lits[0], cl)
			}
		}
		s.watches[litIndex(falsified)] = kept
	}
	return nil
}

// pickDecisionVar returns an unassigned variable, preferring the one with
// the largest combined watch-list size (a static activity proxy, in the
// spirit of cespare/saturday's watch-count heap but recomputed per
// decision so it stays correct across incremental AddClause calls).
func (s *Solver) pickDecisionVar() (logic.Var, bool) {
	best := -1
	bestScore := -1
	for v := 0; v < len(s.assign); v++ {
		if s.assign[v] != assignUnassigned {
			continue
		}
		score := len(s.watches[litIndex(logic.NewLit(logic.Var(v), true))]) + len(s.watches[litIndex(logic.NewLit(logic.Var(v), false))])
		if score > bestScore {
			bestScore, best = score, v
		}
	}
	if best == -1 {
		return 0, false
	}
	return logic.Var(best), true
}

func (s *Solver) decisionPolarity(v logic.Var) bool {
	switch s.polarityPref[v] {
	case assignTrue:
		return true
	case assignFalse:
		return false
	default:
		return true
	}
}

// Solve implements Incremental.
func (s *Solver) Solve(assumptions []logic.Lit) Result {
	s.bump()
	s.backtrackToLevel(0)

	if s.unsat {
		return s.unsatResult(assumptions)
	}

	for i, a := range assumptions {
		switch s.valueAt(a) {
		case 1:
			continue // already implied at level 0, no decision needed
		case -1:
			return s.unsatResultPrefix(assumptions[:i+1])
		}
		s.pushDecision(a, true)
		if conflict := s.propagate(); conflict != nil {
			return s.unsatResultPrefix(assumptions[:i+1])
		}
	}

	for {
		if conflict := s.propagate(); conflict != nil {
			if !s.resolveConflict() {
				return s.unsatResult(assumptions)
			}
			continue
		}
		v, ok := s.pickDecisionVar()
		if !ok {
			return Result{Sat: true, Model: &Model{s: s, gen: s.generation}}
		}
		l := logic.NewLit(v, s.decisionPolarity(v))
		s.pushDecision(l, false)
	}
}

// resolveConflict undoes decisions from the top until it finds a free
// decision not yet tried both ways, flips it, and returns true. It returns
// false once every remaining decision is either an assumption or already
// tried both ways, meaning the problem is unsat under the live assumptions.
func (s *Solver) resolveConflict() bool {
	for s.decisionLevel() > 0 {
		top := s.decisionLevel() - 1
		if s.decisionIsAssumption[top] || s.decisionTried[top] {
			s.backtrackToLevel(top)
			continue
		}
		flipped := s.decisionLit[top].Not()
		s.backtrackToLevel(top)
		s.trailLim = append(s.trailLim, len(s.trail))
		s.decisionIsAssumption = append(s.decisionIsAssumption, false)
		s.decisionLit = append(s.decisionLit, flipped)
		s.decisionTried = append(s.decisionTried, true)
		s.enqueue(flipped, nil)
		return true
	}
	return false
}

// unsatResult builds an UNSAT Result whose core is every live assumption.
// The solver does no resolution-based conflict analysis, so when the
// conflict is only reached deep in the free-decision search (rather than
// while asserting the assumption prefix itself) it cannot say which
// assumptions were actually load-bearing. A core equal to the whole
// assumption set is still sound, just less precise than a resolution
// core would be. mic shrinks cubes by re-querying with fewer assumptions,
// so it does not depend on core minimality; lift keeps every latch
// literal in the core, so its predecessor cubes are larger than a
// resolution core would give.
func (s *Solver) unsatResult(assumptions []logic.Lit) Result {
	return s.unsatResultPrefix(assumptions)
}

func (s *Solver) unsatResultPrefix(prefix []logic.Lit) Result {
	lits := make(map[logic.Lit]bool, len(prefix))
	for _, l := range prefix {
		lits[l] = true
	}
	return Result{Sat: false, Core: &Core{s: s, gen: s.generation, lits: lits}}
}
