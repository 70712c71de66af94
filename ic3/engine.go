// Package ic3 implements the IC3/PDR engine: the frame stack, proof
// obligations, MIC generalization, and the main block/propagate loop
// described in original_source's ic3.rs, frame.rs, and mic.rs.
package ic3

import (
	"math/rand"

	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/model"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
)

// Options configures an Engine, mirroring the CLI flags in spec.md §6.
type Options struct {
	Ctg        bool
	Cav23      bool
	RandomSeed *int64
	Log        *logrus.Logger
}

// Engine is the IC3 algorithm's mutable state: the frame stack, one
// solver per existing frame, the two activity trackers, the lift solver,
// and the obligation queue reused across block() calls.
type Engine struct {
	m       *model.Model
	frames  *Frames
	solvers []*Ic3Solver
	mic     *MicContext

	activity      *Activity
	cav23Activity *Activity
	lift          *Lift
	obligations   *ObligationQueue
	stat          *Statistic

	ctg   bool
	cav23 bool
	log   *logrus.Logger

	cex *Obligation // set when block() reaches frame 0
}

// NewEngine builds the engine for m: frame 0 seeded with one cube per
// latch's init bit (spec.md §4.G's initialization step), and a solver for
// that frame.
func NewEngine(m *model.Model, opts Options) *Engine {
	frames := NewFrames()
	for _, c := range m.InitCubes() {
		frames.AddCube(0, c)
	}

	solvers := []*Ic3Solver{NewIc3Solver(0, m, frames)}
	activity := NewActivity()
	var cav23Activity *Activity
	if opts.Cav23 {
		cav23Activity = NewActivity()
	}
	if opts.RandomSeed != nil {
		seedActivity(activity, *opts.RandomSeed, m)
	}
	pushFail := NewPushFail()

	e := &Engine{
		m:             m,
		frames:        frames,
		solvers:       solvers,
		activity:      activity,
		cav23Activity: cav23Activity,
		lift:          NewLift(m),
		obligations:   NewObligationQueue(),
		stat:          NewStatistic(),
		ctg:           opts.Ctg,
		cav23:         opts.Cav23,
		log:           opts.Log,
	}
	e.mic = &MicContext{
		Solvers:       solvers,
		Frames:        frames,
		Model:         m,
		Activity:      activity,
		Cav23Activity: cav23Activity,
		PushFail:      pushFail,
		Stat:          e.stat,
	}
	return e
}

// seedActivity gives every latch and input variable a random starting
// score drawn from a source seeded by --random. Only the activity scores
// are seeded; the SAT solvers' search is not randomized.
func seedActivity(a *Activity, seed int64, m *model.Model) {
	rng := rand.New(rand.NewSource(seed))
	for _, v := range m.Latchs {
		a.scores[v] = rng.Float64()
	}
	for _, v := range m.Inputs {
		a.scores[v] = rng.Float64()
	}
}

// Statistic exposes the engine's accumulated counters, for --verbose
// reporting and the signal handler.
func (e *Engine) Statistic() *Statistic { return e.stat }

// PushFailCounts exposes obligation push counts per frame, for reporting.
func (e *Engine) PushFailCounts() []int { return e.obligations.PushCounts() }

// Depth returns the current frame stack depth.
func (e *Engine) Depth() int { return e.frames.Depth() }

// Frames exposes the frame stack, used by --save-frames and the verifier.
func (e *Engine) Frames() *Frames { return e.frames }

// newFrame appends an empty frame and its solver, per spec.md §4.G.
func (e *Engine) newFrame() {
	e.frames.NewFrame()
	idx := e.frames.Depth()
	e.solvers = append(e.solvers, NewIc3Solver(idx, e.m, e.frames))
	e.mic.Solvers = e.solvers
	e.stat.NumFrames++
	e.debugDumpFrames()
}

// debugDumpFrames pretty-prints each frame's cube count at -V's
// logrus.DebugLevel, the teacher's own `pretty.Println` idiom for an
// always-available internal-state dump rather than ad hoc field logging.
func (e *Engine) debugDumpFrames() {
	if e.log == nil || !e.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	counts := make([]int, e.frames.Depth()+1)
	for i := range counts {
		counts[i] = len(e.frames.At(i))
	}
	e.log.Debugf("frame cube counts: %s", pretty.Sprint(counts))
}

// getBad checks whether the current top frame can reach the bad states,
// lifting the witness to a predecessor cube (see Lift.Minimize) when it can.
func (e *Engine) getBad() (bool, logic.Cube) {
	e.stat.NumGetBad++
	top := e.solvers[e.frames.Depth()]
	sat, witness := top.CheckBad(e.m.Bad)
	if !sat {
		return false, nil
	}
	pred := e.lift.Minimize(witness, logic.Cube{e.m.Bad}, e.activity)
	return true, pred
}

// block implements spec.md §4.G's block(frame, cube): drive the
// obligation queue until either the counterexample reaches frame 0
// (returns false) or every obligation is resolved (returns true).
func (e *Engine) block(frame int, cube logic.Cube) bool {
	stop := e.stat.TimeBlock()
	defer stop()

	e.obligations.Push(&Obligation{Frame: frame, Cube: cube})
	for e.obligations.Len() > 0 {
		ob := e.obligations.Pop()
		f, c := ob.Frame, ob.Cube

		if f == 0 {
			e.cex = ob
			return false
		}
		if cubeSubsumedByInit(c, e.m.Init) {
			panic("ic3: obligation cube subsumed by init at frame > 0")
		}
		if e.frames.TrivialContained(f, c) {
			continue
		}

		e.stat.NumBlock++
		res := e.solvers[f-1].Blocked(c)
		if res.Blocked {
			e.stat.NumBlockUnsat++
			conflict := ConflictCube(c, res.Core, e.m)
			res.Release()

			frontier, _ := e.generalizeCube(f, conflict)
			if frontier < e.frames.Depth() {
				e.obligations.Push(&Obligation{Frame: frontier + 1, Cube: c, Depth: ob.Depth, Successor: ob.Successor})
			}
			continue
		}

		e.stat.NumBlockSat++
		pred := e.lift.Minimize(res.Model, e.m.NextCube(c), e.activity)
		res.Release()
		e.obligations.Push(&Obligation{Frame: f - 1, Cube: pred, Depth: ob.Depth + 1, Successor: ob})
		e.obligations.Push(ob)
	}
	return true
}

// generalizeCube runs Mic on conflict (blocked at frame), pushes the
// result forward as far as it remains blocked, and adds it to the frame
// stack at that frontier, per spec.md §4.G's "run MIC/generalize, add
// resulting cube at the forward-most frame it still blocks."
func (e *Engine) generalizeCube(frame int, conflict logic.Cube) (int, logic.Cube) {
	stop := e.stat.TimeMic()
	defer stop()
	e.stat.NumMic++

	generalized := e.mic.Mic(frame, conflict, !e.ctg)
	frontier, final := e.mic.pushForward(frame, generalized)
	e.mic.addLearnedCube(frontier, final)
	e.stat.NumMicSuccess++
	return frontier, final
}

// propagate implements spec.md §4.G's propagate(trivial): push every
// surviving cube in frames [start, depth-1] forward one frame, returning
// true once some frame empties (the candidate invariant has converged).
func (e *Engine) propagate(trivial bool) bool {
	stop := e.stat.TimePropagate()
	defer stop()
	e.mic.PushFail.Clear()

	depth := e.frames.Depth()
	start := 1
	if trivial {
		start = depth - 1
	}

	for i := start; i <= depth-1; i++ {
		for _, c := range e.frames.SnapshotSortedByLength(i) {
			res := e.solvers[i].Blocked(c)
			if res.Blocked {
				conflict := ConflictCube(c, res.Core, e.m)
				res.Release()
				e.mic.addLearnedCube(i+1, conflict)
				if e.cav23Activity != nil {
					e.cav23Activity.Pump(c)
				}
			} else {
				cex := latchCube(e.m, res.Model)
				res.Release()
				e.mic.PushFail.Set(c, i, cex)
			}
		}
		e.solvers[i+1].Simplify()
		if len(e.frames.At(i)) == 0 {
			return true
		}
	}
	return false
}

// Check runs the main IC3 loop (spec.md §4.G): alternately drain bad
// states at the current depth and push a new frame, until either a
// counterexample reaches frame 0 (safe=false, cex describes the trace's
// innermost obligation) or propagation converges (safe=true).
func (e *Engine) Check() (safe bool, cex *Obligation) {
	for {
		trivial := true
		for {
			sat, bad := e.getBad()
			if !sat {
				break
			}
			trivial = false
			if !e.block(e.frames.Depth(), bad) {
				return false, e.cex
			}
		}
		e.newFrame()
		if e.propagate(trivial) {
			return true, nil
		}
	}
}
