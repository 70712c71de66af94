package ic3

import (
	"path/filepath"
	"testing"

	"github.com/cbarrett/ic3go/logic"
)

func sampleFrames() *Frames {
	frames := NewFrames()
	frames.NewFrame()
	frames.AddCube(1, logic.Cube{logic.NewLit(1, true), logic.NewLit(2, false)})
	frames.AddCube(1, logic.Cube{logic.NewLit(2, true), logic.NewLit(3, true)})
	return frames
}

func TestSaveLoadFramesRoundTrip(t *testing.T) {
	frames := sampleFrames()
	path := filepath.Join(t.TempDir(), "frames.json")
	if err := SaveFrames(path, frames); err != nil {
		t.Fatalf("SaveFrames: %v", err)
	}
	loaded, err := LoadFrames(path)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	if loaded.Depth() != frames.Depth() {
		t.Fatalf("depth mismatch: got %d want %d", loaded.Depth(), frames.Depth())
	}
	for i := 0; i <= frames.Depth(); i++ {
		want, got := frames.At(i), loaded.At(i)
		if len(want) != len(got) {
			t.Fatalf("frame %d: cube count mismatch: got %d want %d", i, len(got), len(want))
		}
		for j, c := range want {
			if !c.Equal(got[j]) {
				t.Fatalf("frame %d cube %d: got %v want %v", i, j, got[j], c)
			}
		}
	}
}

func TestAffinityIdenticalCubesScoreOne(t *testing.T) {
	a := logic.Cube{logic.NewLit(1, true), logic.NewLit(2, false)}
	b := a.Clone()
	scores := Affinity([]logic.Cube{a, b})
	if scores[0][1] != 1 {
		t.Fatalf("expected identical cubes to score 1.0, got %v", scores[0][1])
	}
	if scores[0][0] != 1 {
		t.Fatalf("expected a cube's self-affinity to be 1.0, got %v", scores[0][0])
	}
}

func TestAffinityDisjointCubesScoreZero(t *testing.T) {
	a := logic.Cube{logic.NewLit(1, true)}
	b := logic.Cube{logic.NewLit(2, true)}
	scores := Affinity([]logic.Cube{a, b})
	if scores[0][1] != 0 {
		t.Fatalf("expected disjoint cubes to score 0, got %v", scores[0][1])
	}
}

func TestFilterByVars(t *testing.T) {
	c := logic.Cube{logic.NewLit(1, true), logic.NewLit(2, false), logic.NewLit(3, true)}
	out := FilterByVars([]logic.Cube{c}, map[logic.Var]bool{2: true})
	if len(out) != 1 || len(out[0]) != 1 || out[0][0].Var() != 2 {
		t.Fatalf("expected only var 2's literal to survive, got %v", out)
	}
}
