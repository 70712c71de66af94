package ic3

import (
	"testing"

	"github.com/cbarrett/ic3go/logic"
)

func lit(v int, pos bool) logic.Lit { return logic.NewLit(logic.Var(v), pos) }

func TestFramesAddCubeRejectsRedundant(t *testing.T) {
	f := NewFrames()
	f.NewFrame()
	wide := logic.Cube{lit(1, true), lit(2, true)}
	narrow := logic.Cube{lit(1, true)}

	added, begin := f.AddCube(1, narrow)
	if !added || begin != 1 {
		t.Fatalf("expected narrow cube to be added at begin=1, got added=%v begin=%d", added, begin)
	}
	added, _ = f.AddCube(1, wide)
	if added {
		t.Fatal("expected the wider cube to be rejected as already subsumed by the narrower one")
	}
}

func TestFramesAddCubePushesForwardRemovesWeaker(t *testing.T) {
	f := NewFrames()
	f.NewFrame()
	f.NewFrame()
	wide := logic.Cube{lit(1, true), lit(2, true)}
	if added, _ := f.AddCube(1, wide); !added {
		t.Fatal("expected the first cube to be added")
	}
	narrow := logic.Cube{lit(1, true)}
	added, begin := f.AddCube(2, narrow)
	if !added {
		t.Fatal("expected the stronger cube to be added")
	}
	if begin != 2 {
		t.Fatalf("expected begin=2 (the weaker cube was removed from frame 1), got %d", begin)
	}
	if len(f.At(1)) != 0 {
		t.Fatalf("expected the subsumed cube to be removed from frame 1, got %v", f.At(1))
	}
}

func TestFramesTrivialContainedChecksAllHigherFrames(t *testing.T) {
	f := NewFrames()
	f.NewFrame()
	f.NewFrame()
	f.AddCube(2, logic.Cube{lit(1, true)})
	if !f.TrivialContained(1, logic.Cube{lit(1, true), lit(2, true)}) {
		t.Fatal("expected a cube in frame 2 to trivially contain a weaker cube checked at frame 1")
	}
}

func TestFramesParentFrameZeroNeverConsidered(t *testing.T) {
	f := NewFrames()
	f.AddCube(0, logic.Cube{lit(1, true)})
	if p := f.Parent(logic.Cube{lit(1, true)}, 1); p != nil {
		t.Fatalf("expected Parent to never inspect frame 0, got %v", p)
	}
}

func TestFramesParentFindsSubsumingCube(t *testing.T) {
	f := NewFrames()
	f.NewFrame()
	f.NewFrame()
	parent := logic.Cube{lit(1, true)}
	f.AddCube(1, parent)
	child := logic.Cube{lit(1, true), lit(2, true)}
	parents := f.Parent(child, 2)
	if len(parents) != 1 || !parents[0].Equal(parent) {
		t.Fatalf("expected to find the parent cube, got %v", parents)
	}
}
