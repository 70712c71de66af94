package ic3

import (
	"sort"
	"strconv"

	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/model"
	"github.com/cbarrett/ic3go/satsolver"
)

// PushFail caches, per (parent cube, frame), the counterexample cube that
// defeated a previous attempt to push parent forward into frame+1. MIC's
// parent-guided shortcut (spec.md §4.H) consults this to skip redundant
// down-checks; propagate populates it when a forward push fails.
type PushFail struct {
	m map[string]logic.Cube
}

// NewPushFail returns an empty cache.
func NewPushFail() *PushFail {
	return &PushFail{m: make(map[string]logic.Cube)}
}

func pushFailKey(parent logic.Cube, frame int) string {
	b := make([]byte, 0, 8*len(parent)+4)
	for _, l := range parent {
		b = strconv.AppendUint(b, uint64(l), 10)
		b = append(b, ',')
	}
	b = append(b, '@')
	b = strconv.AppendInt(b, int64(frame), 10)
	return string(b)
}

// Get returns the cached cex for (parent, frame), if any.
func (p *PushFail) Get(parent logic.Cube, frame int) (logic.Cube, bool) {
	c, ok := p.m[pushFailKey(parent, frame)]
	return c, ok
}

// Set records cex as the cache entry for (parent, frame).
func (p *PushFail) Set(parent logic.Cube, frame int, cex logic.Cube) {
	p.m[pushFailKey(parent, frame)] = cex
}

// Clear empties the cache, called when the engine starts a new frame
// (spec.md §9: push-failure cexes from a stale frame depth are no longer
// meaningful).
func (p *PushFail) Clear() {
	p.m = make(map[string]logic.Cube)
}

type downKind int

const (
	downSuccess downKind = iota
	downFail
	downIncludeInit
)

// DownResult is the outcome of down/ctg_down: Success carries the
// generalized conflict cube, Fail carries the refuting witness cube, and
// IncludeInit signals C is subsumed by the initial states and cannot be
// used as a blocking cube at all.
type DownResult struct {
	Kind     downKind
	Conflict logic.Cube
	Witness  logic.Cube
}

// MicContext bundles the state a mic() call needs: the per-frame solvers
// (solvers[f-1] checks blocked-ness at frame f), the frame stack, the
// transition model, the activity tracker used to order literal drops, and
// the push-failure cache consulted by the parent-guided shortcut.
type MicContext struct {
	Solvers       []*Ic3Solver
	Frames        *Frames
	Model         *model.Model
	Activity      *Activity
	Cav23Activity *Activity // non-nil only when --cav23 is set; secondary tie-break for drop order
	PushFail      *PushFail
	Stat          *Statistic
}

// sortForDrop orders cube ascending by primary activity, breaking ties by
// the CAV23 secondary activity when enabled, per spec.md §4.H step 2.
func (mc *MicContext) sortForDrop(cube logic.Cube) logic.Cube {
	out := cube.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := mc.Activity.Score(out[i].Var()), mc.Activity.Score(out[j].Var())
		if si != sj {
			return si < sj
		}
		if mc.Cav23Activity == nil {
			return false
		}
		return mc.Cav23Activity.Score(out[i].Var()) < mc.Cav23Activity.Score(out[j].Var())
	})
	return out
}

// cubeSubsumedByInit reports whether c is entirely consistent with the
// initial-state assignment (every literal of c, where init is defined,
// agrees in polarity): spec.md's "C ⊆ init".
func cubeSubsumedByInit(c logic.Cube, init map[logic.Var]bool) bool {
	for _, l := range c {
		b, ok := init[l.Var()]
		if ok && l.Polarity() != b {
			return false
		}
	}
	return true
}

func (mc *MicContext) solverFor(frame int) *Ic3Solver {
	return mc.Solvers[frame-1]
}

// blockCheck runs a blocked-check at frame against C, extracting whatever
// the caller needs from the result before releasing the query's
// activation literal.
func (mc *MicContext) blockCheck(frame int, C logic.Cube) (yes bool, conflict logic.Cube, witness logic.Cube) {
	res := mc.solverFor(frame).Blocked(C)
	defer res.Release()
	if res.Blocked {
		return true, ConflictCube(C, res.Core, mc.Model), nil
	}
	return false, nil, latchCube(mc.Model, res.Model)
}

// latchCube reads witness's assignment over every latch variable into a
// cube, sorted by variable to match the frame-cube convention.
func latchCube(m *model.Model, witness *satsolver.Model) logic.Cube {
	cube := make(logic.Cube, len(m.Latchs))
	for i, v := range m.Latchs {
		cube[i] = logic.NewLit(v, witness.VarValue(v))
	}
	cube.SortByVar()
	return cube
}

// addLearnedCube runs Frames.AddCube and, if the cube survived
// subsumption, asserts it into every solver AddCube says still needs it.
func (mc *MicContext) addLearnedCube(k int, c logic.Cube) {
	added, begin := mc.Frames.AddCube(k, c)
	if !added {
		return
	}
	for i := begin; i <= k; i++ {
		mc.Solvers[i].AddClause(c)
	}
}

// pushForward walks cube forward from start, replacing it with the
// conflict cube from each successful blocked-check, stopping at the first
// frame it is no longer blocked at or at the solver-array bound. It
// returns the last frame cube was confirmed blocked at, and cube itself
// (possibly strengthened along the way).
func (mc *MicContext) pushForward(start int, cube logic.Cube) (int, logic.Cube) {
	frontier := start
	for frontier+1 <= len(mc.Solvers) {
		yes, conflict, _ := mc.blockCheck(frontier+1, cube)
		if !yes {
			break
		}
		cube = conflict
		frontier++
	}
	return frontier, cube
}

// addTemporaryToRange asserts c as a temporary (retractable) clause in
// every solver from frame 1 up to hi, per spec.md §4.H's "add ... as a
// temporary clause to solvers 1..=frame".
func (mc *MicContext) addTemporaryToRange(hi int, c logic.Cube) {
	for i := 1; i <= hi; i++ {
		mc.Solvers[i].AddTemporaryClause(c)
	}
}

// down implements spec.md §4.H's down(frame, C): a single blocked-check
// with no CTG recursion, used in "simple" mode.
func (mc *MicContext) down(frame int, C logic.Cube) DownResult {
	if cubeSubsumedByInit(C, mc.Model.Init) {
		return DownResult{Kind: downIncludeInit}
	}
	yes, conflict, witness := mc.blockCheck(frame, C)
	if yes {
		return DownResult{Kind: downSuccess, Conflict: conflict}
	}
	return DownResult{Kind: downFail, Witness: witness}
}

// ctgDown implements spec.md §4.H's ctg_down(frame, C, keep): down with a
// bounded counterexample-to-generalization recursion that tries to
// strengthen the frame just below using the witness before giving up on
// the current literal.
func (mc *MicContext) ctgDown(frame int, C logic.Cube, keep logic.Cube) DownResult {
	ctgs := 0
	for {
		if cubeSubsumedByInit(C, mc.Model.Init) {
			return DownResult{Kind: downIncludeInit}
		}
		yes, conflict, witness := mc.blockCheck(frame, C)
		if yes {
			return DownResult{Kind: downSuccess, Conflict: conflict}
		}

		if ctgs < 3 && frame > 1 && !cubeSubsumedByInit(witness, mc.Model.Init) {
			yes2, conflict2, _ := mc.blockCheck(frame-1, witness)
			if yes2 {
				ctgs++
				mc.Stat.NumCtg++
				frontier, pushed := mc.pushForward(frame-1, conflict2)
				generalized := mc.Mic(frontier, pushed, true)
				mc.addLearnedCube(frontier, generalized)
				continue
			}
		}

		ctgs = 0
		var filtered logic.Cube
		for _, l := range C {
			if witness.Contains(l) {
				filtered = append(filtered, l)
			}
		}
		for _, l := range C {
			if !filtered.Contains(l) && keep.Contains(l) {
				return DownResult{Kind: downFail, Witness: witness}
			}
		}
		C = filtered
	}
}

// Mic implements spec.md §4.H's mic(frame, cube, simple): it returns a
// subsumed cube that remains blocked at frame, trying the parent-guided
// shortcut first and otherwise dropping literals one at a time in
// activity order, recursing through ctg_down unless simple is set.
func (mc *MicContext) Mic(frame int, cube logic.Cube, simple bool) logic.Cube {
	cube = cube.Clone()
	cube.SortByVar()

	if !simple {
		mc.addTemporaryToRange(frame, cube)
	}
	cube = mc.sortForDrop(cube)
	var keep logic.Cube

	varSorted := cube.Clone()
	varSorted.SortByVar()
	if parents := mc.Frames.Parent(varSorted, frame); len(parents) > 0 {
		if shortcut, ok := mc.parentShortcut(frame, cube, parents, simple); ok {
			return shortcut
		}
	}

	i := 0
	for i < len(cube) {
		candidate := cube.Filter(func(l logic.Lit) bool { return l != cube[i] })
		var res DownResult
		if simple {
			res = mc.down(frame, candidate)
		} else {
			res = mc.ctgDown(frame, candidate, keep)
		}
		if res.Kind == downSuccess {
			cube = cube.Filter(func(l logic.Lit) bool { return res.Conflict.Contains(l) })
			i = 0
			for i < len(cube) && keep.Contains(cube[i]) {
				i++
			}
			mc.addTemporaryToRange(frame, candidate)
		} else if res.Kind == downFail {
			keep = append(keep, cube[i])
			i++
		} else {
			// downIncludeInit: spec.md §7 treats this as a Fail that
			// does not mark the literal necessary.
			i++
		}
	}

	mc.Activity.Pump(cube)
	return cube
}

// parentShortcut implements MIC's parent-guided shortcut: if a parent in
// F_{frame-1} already equals cube it is returned unchanged; otherwise each
// push-failure-cached parent is tried as a seed, with one down-check per
// literal of cube that is absent from the parent's cached cex (parent plus
// that literal), or a down-check on the parent alone when there is none.
func (mc *MicContext) parentShortcut(frame int, cube logic.Cube, parents []logic.Cube, simple bool) (logic.Cube, bool) {
	for _, p := range parents {
		if p.Equal(cube) {
			return p, true
		}
	}
	for _, p := range parents {
		cex, ok := mc.PushFail.Get(p, frame-1)
		if !ok {
			continue
		}
		diff := cube.Filter(func(l logic.Lit) bool { return !cex.Contains(l) })

		if len(diff) > 0 {
			ordered := mc.Activity.SortByActivity(diff, false)
			for _, d := range ordered {
				candidate := append(p.Clone(), d)
				candidate.SortByVar()
				var res DownResult
				if simple {
					res = mc.down(frame, candidate)
				} else {
					res = mc.ctgDown(frame, candidate, nil)
				}
				if res.Kind == downSuccess {
					return res.Conflict, true
				}
				if simple && res.Kind == downFail {
					diff = diff.Filter(func(l logic.Lit) bool { return !res.Witness.Contains(mc.Model.Next(l)) })
				}
			}
			continue
		}

		var res DownResult
		if simple {
			res = mc.down(frame, p)
		} else {
			res = mc.ctgDown(frame, p, nil)
		}
		if res.Kind == downSuccess {
			return res.Conflict, true
		}
		if res.Kind == downFail {
			mc.PushFail.Set(p, frame-1, res.Witness)
		}
	}
	return nil, false
}
