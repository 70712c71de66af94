package ic3

import (
	"testing"

	"github.com/cbarrett/ic3go/logic"
)

func TestIc3SolverBlockedOnSelfLoop(t *testing.T) {
	m := buildModel(t, selfLoopAig(false))
	frames := NewFrames()
	for _, c := range m.InitCubes() {
		frames.AddCube(0, c)
	}
	is := NewIc3Solver(0, m, frames)

	// frame 0 forces latch=false (init excludes latch=true); since
	// next(latch)=latch, no predecessor can reach latch=true, so the cube
	// {latch=true} is blocked.
	res := is.Blocked(logic.Cube{logic.NewLit(m.Latchs[0], true)})
	defer res.Release()
	if !res.Blocked {
		t.Fatal("expected {latch=true} to be blocked at frame 0")
	}
	conflict := ConflictCube(res.Cube, res.Core, m)
	if len(conflict) == 0 {
		t.Fatal("expected a non-empty conflict cube")
	}
}

func TestIc3SolverCheckBadOnUnsafeSelfLoop(t *testing.T) {
	m := buildModel(t, selfLoopAig(true))
	frames := NewFrames()
	for _, c := range m.InitCubes() {
		frames.AddCube(0, c)
	}
	is := NewIc3Solver(0, m, frames)
	sat, witness := is.CheckBad(m.Bad)
	if !sat {
		t.Fatal("expected bad to be reachable immediately when init=true")
	}
	if !witness.VarValue(m.Latchs[0]) {
		t.Fatal("expected the witness to have the latch true")
	}
}

func TestExcludesInitAndViolatesInit(t *testing.T) {
	m := buildModel(t, counterAig())
	init := m.Init
	l0 := m.Latchs[0]

	agrees := logic.NewLit(l0, false) // init(l0) == false
	disagrees := logic.NewLit(l0, true)

	if violatesInit(agrees, init) {
		t.Fatal("expected a literal agreeing with init to not violate it")
	}
	if !violatesInit(disagrees, init) {
		t.Fatal("expected a literal disagreeing with init to violate it")
	}
	if excludesInit(logic.Cube{agrees}, init) {
		t.Fatal("expected a cube of only init-agreeing literals to not exclude init")
	}
	if !excludesInit(logic.Cube{agrees, disagrees}, init) {
		t.Fatal("expected a cube containing one init-violating literal to exclude init")
	}
}
