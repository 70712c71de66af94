package ic3

import (
	"testing"

	"github.com/cbarrett/ic3go/logic"
)

func TestMicShrinksCounterCubeToSingleLiteral(t *testing.T) {
	m := buildModel(t, counterAig())
	e := NewEngine(m, Options{Ctg: true})
	e.newFrame() // frame 1, so Mic(1, ...) checks blocked-ness against frame 0 (init)

	l0, l1 := m.Latchs[0], m.Latchs[1]
	cube := logic.Cube{logic.NewLit(l0, true), logic.NewLit(l1, true)}

	generalized := e.mic.Mic(1, cube, true)
	if len(generalized) != 1 || generalized[0].Var() != l1 {
		t.Fatalf("expected Mic to shrink {l0,l1} to just {l1=true}, got %v", generalized)
	}
}

func TestMicWithCtgRecursion(t *testing.T) {
	m := buildModel(t, counterAig())
	e := NewEngine(m, Options{Ctg: true})
	e.newFrame()

	l0, l1 := m.Latchs[0], m.Latchs[1]
	cube := logic.Cube{logic.NewLit(l0, true), logic.NewLit(l1, true)}

	generalized := e.mic.Mic(1, cube, false)
	if len(generalized) == 0 {
		t.Fatal("expected a non-empty generalized cube")
	}
	// Whatever Mic returns must still be blocked at frame 1.
	yes, _, _ := e.mic.blockCheck(1, generalized)
	if !yes {
		t.Fatalf("expected the generalized cube %v to remain blocked at frame 1", generalized)
	}
}

func TestPushFailCache(t *testing.T) {
	pf := NewPushFail()
	parent := logic.Cube{logic.NewLit(1, true)}
	cex := logic.Cube{logic.NewLit(2, false)}

	if _, ok := pf.Get(parent, 3); ok {
		t.Fatal("expected a miss on an empty cache")
	}
	pf.Set(parent, 3, cex)
	got, ok := pf.Get(parent, 3)
	if !ok || !got.Equal(cex) {
		t.Fatalf("expected to retrieve the cached cex, got %v ok=%v", got, ok)
	}
	pf.Clear()
	if _, ok := pf.Get(parent, 3); ok {
		t.Fatal("expected Clear to empty the cache")
	}
}

func TestCubeSubsumedByInit(t *testing.T) {
	m := buildModel(t, counterAig())
	l0 := m.Latchs[0]
	agrees := logic.Cube{logic.NewLit(l0, false)}
	disagrees := logic.Cube{logic.NewLit(l0, true)}

	if !cubeSubsumedByInit(agrees, m.Init) {
		t.Fatal("expected a cube agreeing with init to be subsumed by it")
	}
	if cubeSubsumedByInit(disagrees, m.Init) {
		t.Fatal("expected a cube disagreeing with init to not be subsumed by it")
	}
}
