package aig

import (
	"bytes"
	"strings"
	"testing"
)

// selfLoopLatch builds the S1 fixture from spec.md §8: 0 inputs, 1 latch
// with init=0 and next=latch (self-loop), bad=latch.
func selfLoopLatch(t *testing.T) *Aig {
	t.Helper()
	src := "aag 1 0 1 1 0\n2 2 0\n2\n"
	a, err := FromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	return a
}

func TestParseASCIISelfLoop(t *testing.T) {
	a := selfLoopLatch(t)
	if len(a.Latchs) != 1 {
		t.Fatalf("expected 1 latch, got %d", len(a.Latchs))
	}
	l := a.Latchs[0]
	if l.Init == nil || *l.Init != false {
		t.Fatalf("expected init=false, got %+v", l.Init)
	}
	if l.Next.ID != l.Input || l.Next.Complement {
		t.Fatalf("expected self-loop next=latch, got %+v", l.Next)
	}
}

func TestBad(t *testing.T) {
	a := &Aig{Outputs: []Edge{NewEdge(1, false)}}
	if a.Bad() != (Edge{ID: 1}) {
		t.Fatalf("expected bads-empty fallback to outputs[0]")
	}
	a.Bads = []Edge{NewEdge(2, true)}
	if a.Bad() != NewEdge(2, true) {
		t.Fatalf("expected bads[0] to win once present")
	}
}

func TestLogicConeVsFullCnfAgreeOnReferencedNodes(t *testing.T) {
	// aag M I L O A: 2 inputs, 1 and gate n3 = i1 & i2.
	src := "aag 3 2 0 0 1\n2\n4\n6 2 4\n"
	a, err := FromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	root := NewEdge(3, false)
	cone := a.LogicCone(root)
	full := a.Cnf()
	if len(cone) != len(full) {
		t.Fatalf("expected logic cone and full cnf to agree when every node is referenced: %d vs %d", len(cone), len(full))
	}
}

func TestBinaryRoundTripDeltaEncoding(t *testing.T) {
	a := selfLoopLatch(t)
	var buf bytes.Buffer
	if err := WriteBinary(&buf, a); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	reparsed, err := FromReader(&buf)
	if err != nil {
		t.Fatalf("FromReader(round-trip): %v", err)
	}
	if len(reparsed.Latchs) != len(a.Latchs) {
		t.Fatalf("latch count mismatch after round-trip: got %d want %d", len(reparsed.Latchs), len(a.Latchs))
	}
	if reparsed.Latchs[0].Next != a.Latchs[0].Next {
		t.Fatalf("latch next edge mismatch after round-trip: got %+v want %+v", reparsed.Latchs[0].Next, a.Latchs[0].Next)
	}
}
