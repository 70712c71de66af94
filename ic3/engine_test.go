package ic3

import "testing"

func TestCheckSelfLoopSafe(t *testing.T) {
	m := buildModel(t, selfLoopAig(false))
	e := NewEngine(m, Options{Ctg: true})
	safe, cex := e.Check()
	if !safe {
		t.Fatalf("expected SAFE, got counterexample %+v", cex)
	}
	if err := Verify(m, e.Frames()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCheckSelfLoopUnsafe(t *testing.T) {
	m := buildModel(t, selfLoopAig(true))
	e := NewEngine(m, Options{Ctg: true})
	safe, cex := e.Check()
	if safe {
		t.Fatal("expected UNSAFE")
	}
	if cex == nil || cex.Frame != 0 {
		t.Fatalf("expected a counterexample obligation at frame 0, got %+v", cex)
	}
}

func TestCheckCounterUnsafe(t *testing.T) {
	m := buildModel(t, counterAig())
	e := NewEngine(m, Options{Ctg: true})
	safe, cex := e.Check()
	if safe {
		t.Fatal("expected UNSAFE: the counter reaches 11 after three steps")
	}
	if cex == nil || cex.Frame != 0 {
		t.Fatalf("expected the trace to bottom out at frame 0, got %+v", cex)
	}
	depth := 0
	for ob := cex; ob != nil; ob = ob.Successor {
		depth++
	}
	if depth < 4 {
		t.Fatalf("expected a trace of at least 4 obligations (init plus 3 steps), got %d", depth)
	}
}

func TestCheckWithoutCtg(t *testing.T) {
	m := buildModel(t, counterAig())
	e := NewEngine(m, Options{Ctg: false})
	safe, _ := e.Check()
	if safe {
		t.Fatal("expected UNSAFE regardless of --ctg")
	}
}

func TestCheckWithCav23(t *testing.T) {
	m := buildModel(t, selfLoopAig(false))
	e := NewEngine(m, Options{Ctg: true, Cav23: true})
	if e.cav23Activity == nil {
		t.Fatal("expected a CAV23 activity tracker when Cav23 is enabled")
	}
	safe, _ := e.Check()
	if !safe {
		t.Fatal("expected SAFE")
	}
}

func TestCheckWithRandomSeed(t *testing.T) {
	seed := int64(42)
	m := buildModel(t, counterAig())
	e := NewEngine(m, Options{Ctg: true, RandomSeed: &seed})
	for _, v := range m.Latchs {
		if e.activity.Score(v) == 0 {
			t.Fatalf("expected latch %v to have a nonzero seeded score", v)
		}
	}
	safe, _ := e.Check()
	if safe {
		t.Fatal("expected UNSAFE")
	}
}
