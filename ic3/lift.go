package ic3

import (
	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/model"
	"github.com/cbarrett/ic3go/satsolver"
)

// liftRebuildThreshold bounds how many activation literals a Lift solver
// accumulates before it is torn down and rebuilt, per spec.md §4.F/§5.
const liftRebuildThreshold = 1000

// Lift holds a single solver preloaded with the transition relation T,
// used to minimize a concrete SAT witness down to the subset of latch
// literals that suffice to reach a target cube. Both get_bad's
// bad-state minimization and block's predecessor extraction go through
// here; the caller decides whether the target cube needs Next-projecting
// first (see Minimize's doc comment).
type Lift struct {
	m           *model.Model
	solver      *satsolver.Solver
	activations int
}

// NewLift builds a Lift solver loaded with m's transition CNF.
func NewLift(m *model.Model) *Lift {
	return &Lift{m: m, solver: newTransitionSolver(m)}
}

// newTransitionSolver returns a plain (non-preprocessing) solver with m's
// variables allocated in lockstep and m's CNF (which already includes
// the constraint unit clauses, baked in during model.Build) loaded as
// permanent clauses.
func newTransitionSolver(m *model.Model) *satsolver.Solver {
	s := satsolver.New()
	for i := 0; i < m.NumVars; i++ {
		s.NewVar()
	}
	for _, c := range m.Cnf {
		s.AddClause(c)
	}
	return s
}

// Minimize lifts witness (a concrete model over inputs and latches) to a
// cube of latch literals sufficient, together with T, to force target:
// the latch literals in the solver's unsat core. That core is the
// assumption prefix up to the conflict, so the cube is not necessarily
// minimal. Pass target = {bad lit} directly when minimizing a same-state
// witness (get_bad's use), or model.NextCube(obligationCube) when
// minimizing a genuine one-step predecessor (block's Sat branch).
func (l *Lift) Minimize(witness *satsolver.Model, target logic.Cube, activity *Activity) logic.Cube {
	l.rebuildIfNeeded()

	act := l.solver.NewVar()
	actLit := logic.NewLit(act, true)
	guard := append(logic.Clause{actLit.Not()}, target.Not()...)
	l.solver.AddClause(guard)
	l.activations++

	inputLits := make([]logic.Lit, len(l.m.Inputs))
	for i, v := range l.m.Inputs {
		inputLits[i] = logic.NewLit(v, witness.VarValue(v))
	}
	latchLits := make(logic.Cube, len(l.m.Latchs))
	for i, v := range l.m.Latchs {
		latchLits[i] = logic.NewLit(v, witness.VarValue(v))
	}
	latchLits = activity.SortByActivity(latchLits, false)

	assumptions := make([]logic.Lit, 0, 1+len(inputLits)+len(latchLits))
	assumptions = append(assumptions, actLit)
	assumptions = append(assumptions, inputLits...)
	assumptions = append(assumptions, latchLits...)

	res := l.solver.Solve(assumptions)
	if res.Sat {
		panic("ic3: lift query unexpectedly satisfiable")
	}

	var pred logic.Cube
	for _, lit := range latchLits {
		if res.Core.Has(lit) {
			pred = append(pred, lit)
		}
	}
	l.solver.ReleaseVar(actLit.Not())
	return pred
}

func (l *Lift) rebuildIfNeeded() {
	if l.activations < liftRebuildThreshold {
		return
	}
	l.solver = newTransitionSolver(l.m)
	l.activations = 0
}
