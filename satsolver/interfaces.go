// Package satsolver implements the incremental, assumption-based SAT
// back-end the IC3 engine drives: a watched-literal DPLL search extended
// with activation-literal assumptions, unsat-core extraction, and a
// MiniSat-style SimpSolver preprocessing pass (variable freezing plus
// bounded variable elimination). It is grounded on the watched-literal
// design in cespare/saturday, generalized from a one-shot solve into a
// long-lived incremental session.
package satsolver

import "github.com/cbarrett/ic3go/logic"

// Incremental is the minimal interface IC3 needs from a SAT back-end:
// grow the variable pool, add clauses at any time, and solve repeatedly
// under a fresh set of assumptions each call. A call to any method other
// than NumVar (Solve included) invalidates the Model/Core returned by the
// previous Solve.
type Incremental interface {
	// NewVar allocates and returns a fresh variable.
	NewVar() logic.Var

	// AddClause asserts c as a permanent clause.
	AddClause(c logic.Clause)

	// Solve searches for a satisfying assignment extending assumptions.
	// The returned Result's Model or Core remains valid only until the
	// next mutating call (AddClause, NewVar, Solve, SetPolarity,
	// ReleaseVar or Simplify).
	Solve(assumptions []logic.Lit) Result

	// SetPolarity records a decision-polarity preference for v; pol == nil
	// clears any preference, reverting to the solver's default.
	SetPolarity(v logic.Var, pol *bool)

	// ReleaseVar permanently asserts l, retiring any temporary clause that
	// was guarded by ¬l as one of its activation literals.
	ReleaseVar(l logic.Lit)

	// Simplify compacts the clause database, dropping clauses already
	// satisfied at the top decision level.
	Simplify()

	// NumVar returns the number of variables allocated so far.
	NumVar() int
}

// Preprocessing extends Incremental with MiniSat SimpSolver-style
// preprocessing: freeze variables that must survive elimination, then
// eliminate the rest, folding their clauses into resolvents.
type Preprocessing interface {
	Incremental

	// SetFrozen marks v as ineligible for elimination (or eligible again,
	// if frozen is false). Inputs, latches, their primes, constraints and
	// the bad literal must all be frozen before Eliminate runs.
	SetFrozen(v logic.Var, frozen bool)

	// Eliminate runs bounded variable elimination over all non-frozen
	// variables. If turnOffAfter is true, the solver reverts to a plain
	// Incremental solver afterward (no further elimination is possible
	// once IC3 starts adding frame clauses over the eliminated variables).
	Eliminate(turnOffAfter bool)

	// Clauses returns the current clause database, post-elimination.
	Clauses() logic.Cnf
}

// Result is the outcome of a Solve call.
type Result struct {
	Sat   bool
	Model *Model
	Core  *Core
}
