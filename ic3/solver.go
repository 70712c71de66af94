package ic3

import (
	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/model"
	"github.com/cbarrett/ic3go/satsolver"
)

// solverRebuildThreshold bounds activation-literal accumulation per
// spec.md §5: an Ic3Solver is torn down and rebuilt after this many
// allocations.
const solverRebuildThreshold = 1000

// Ic3Solver is the per-frame solver: a plain transition-relation solver
// (shared variable numbering with model.Model) plus the frame's clauses
// and any temporary clauses MIC has layered on top. Every Ic3Solver in
// the engine is built the same way; what differs is which frame's clauses
// (and, for frame 0 only, frame 0's own cubes) get replayed.
type Ic3Solver struct {
	frame       int
	m           *model.Model
	frames      *Frames
	s           *satsolver.Solver
	activations int
	temporary   []logic.Cube
}

// NewIc3Solver builds the solver for the given frame index, loading T plus
// that frame's current clauses (see rebuild's doc comment for the replay
// rule).
func NewIc3Solver(frame int, m *model.Model, frames *Frames) *Ic3Solver {
	is := &Ic3Solver{frame: frame, m: m, frames: frames}
	is.rebuild()
	return is
}

// rebuild recreates the underlying solver from scratch: T, then either
// just F_0 (when this is the frame-0 solver) or every frame from this
// solver's own frame index up to the current depth (otherwise), then any
// still-accumulated temporary clauses.
func (is *Ic3Solver) rebuild() {
	is.s = newTransitionSolver(is.m)
	if is.frame == 0 {
		for _, c := range is.frames.At(0) {
			is.s.AddClause(c.Not())
		}
	} else {
		for i := is.frame; i <= is.frames.Depth(); i++ {
			for _, c := range is.frames.At(i) {
				is.s.AddClause(c.Not())
			}
		}
	}
	for _, c := range is.temporary {
		is.s.AddClause(c.Not())
	}
	is.activations = 0
}

func (is *Ic3Solver) bumpActivation() {
	is.activations++
	if is.activations >= solverRebuildThreshold {
		is.rebuild()
	}
}

// AddClause asserts a permanent frame clause (¬c) directly, used when the
// engine pushes a newly added cube into this solver via Frames.AddCube.
func (is *Ic3Solver) AddClause(c logic.Cube) {
	is.s.AddClause(c.Not())
}

// AddTemporaryClause records c as a clause retained across
// activation-count rebuilds but dropped by ResetTemporary: MIC's prelude
// uses this to assert the cube currently under generalization without
// polluting the frame's permanent clause set.
func (is *Ic3Solver) AddTemporaryClause(c logic.Cube) {
	is.temporary = append(is.temporary, c)
	is.s.AddClause(c.Not())
}

// ResetTemporary drops every accumulated temporary clause, rebuilding the
// solver without them. The engine does not call it: temporary clauses
// stay asserted for the solver's whole lifetime, across rebuilds.
func (is *Ic3Solver) ResetTemporary() {
	is.temporary = nil
	is.rebuild()
}

// Simplify removes clauses the underlying solver has proven satisfied at
// level zero, called by propagate once a frame's solver has absorbed a
// round of pushed cubes.
func (is *Ic3Solver) Simplify() {
	is.s.Simplify()
}

// CheckBad reports whether badLit is satisfiable together with this
// solver's current clauses, returning the witness model on Sat.
func (is *Ic3Solver) CheckBad(badLit logic.Lit) (bool, *satsolver.Model) {
	res := is.s.Solve([]logic.Lit{badLit})
	return res.Sat, res.Model
}

// BlockResult is the outcome of a blocked-check (spec.md §4.G.i): either
// Blocked (Core holds the unsat core over NextAssumption) or not (Model
// holds the witness predecessor). Release must be called once the caller
// is done reading Core/Model and before any other call touches this
// solver, retiring the query's activation literal.
type BlockResult struct {
	Blocked        bool
	Cube           logic.Cube
	NextAssumption logic.Cube
	Core           *satsolver.Core
	Model          *satsolver.Model
	Release        func()
}

// Blocked checks whether cube c is blocked by this solver: is there no
// state satisfying this frame's clauses whose next state satisfies c.
// It asserts a temporary, activation-guarded clause ¬act ∨ ¬c so the
// per-call "exclude c itself as a trivial predecessor" constraint never
// leaks into the permanent clause set, then assumes {act} ∪ next(c).
func (is *Ic3Solver) Blocked(c logic.Cube) BlockResult {
	s := is.s
	act := s.NewVar()
	actLit := logic.NewLit(act, true)
	guard := append(logic.Clause{actLit.Not()}, c.Not()...)
	s.AddClause(guard)
	is.bumpActivation()

	nextLits := is.m.NextCube(c)
	assumptions := make([]logic.Lit, 0, 1+len(nextLits))
	assumptions = append(assumptions, actLit)
	assumptions = append(assumptions, nextLits...)

	res := s.Solve(assumptions)
	release := func() { s.ReleaseVar(actLit.Not()) }

	if res.Sat {
		return BlockResult{Blocked: false, Cube: c, NextAssumption: nextLits, Model: res.Model, Release: release}
	}
	return BlockResult{Blocked: true, Cube: c, NextAssumption: nextLits, Core: res.Core, Release: release}
}

// ConflictCube extracts the generalized conflict cube from a Blocked
// result, per spec.md §4.G.ii: the subset of c whose next-state literal
// appears in the unsat core, re-adding the first init-violating literal
// of c if that subset would otherwise be consistent with init (which
// would make the resulting cube unsound to block, per invariant 1 in
// spec.md §8).
func ConflictCube(c logic.Cube, core *satsolver.Core, m *model.Model) logic.Cube {
	var subset logic.Cube
	for _, l := range c {
		if core.Has(m.Next(l)) {
			subset = append(subset, l)
		}
	}
	if excludesInit(subset, m.Init) {
		return subset
	}
	for _, l := range c {
		if violatesInit(l, m.Init) {
			if !subset.Contains(l) {
				subset = append(subset, l)
			}
			break
		}
	}
	return subset
}

// excludesInit reports whether cube contains at least one literal whose
// polarity disagrees with the init map, meaning the init state cannot
// satisfy cube.
func excludesInit(cube logic.Cube, init map[logic.Var]bool) bool {
	for _, l := range cube {
		if violatesInit(l, init) {
			return true
		}
	}
	return false
}

func violatesInit(l logic.Lit, init map[logic.Var]bool) bool {
	b, ok := init[l.Var()]
	return ok && l.Polarity() != b
}
