package model

import (
	"strings"
	"testing"

	"github.com/cbarrett/ic3go/aig"
	"github.com/cbarrett/ic3go/logic"
)

func selfLoop(t *testing.T) *aig.Aig {
	t.Helper()
	a, err := aig.FromReader(strings.NewReader("aag 1 0 1 1 0\n2 2 0\n2\n"))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	return a
}

func TestBuildSelfLoop(t *testing.T) {
	a := selfLoop(t)
	m, err := Build(a)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Latchs) != 1 || len(m.Primes) != 1 {
		t.Fatalf("expected 1 latch and 1 prime, got %d/%d", len(m.Latchs), len(m.Primes))
	}
	latch := m.Latchs[0]
	if b, ok := m.Init[latch]; !ok || b != false {
		t.Fatalf("expected init=false for the latch, got %+v", m.Init)
	}
	cubes := m.InitCubes()
	if len(cubes) != 1 || len(cubes[0]) != 1 {
		t.Fatalf("expected exactly one singleton init cube, got %+v", cubes)
	}
	// init=false means the latch's "agrees with init" literal is ¬latch;
	// the frame-0 blocking cube is its negation, i.e. the positive literal.
	if cubes[0][0] != logic.NewLit(latch, true) {
		t.Fatalf("expected init cube {latch}, got %v", cubes[0])
	}
}

func TestNextPreviousRoundTrip(t *testing.T) {
	a := selfLoop(t)
	m, err := Build(a)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	latch := m.Latchs[0]
	c := logic.Cube{logic.NewLit(latch, true)}
	if got := m.PreviousCube(m.NextCube(c)); !got.Equal(c) {
		t.Fatalf("previous(next(C)) = %v, want %v", got, c)
	}
}

func TestBuildRejectsSelfContradictingConstraint(t *testing.T) {
	a := &aig.Aig{
		Nodes: []aig.Node{
			{ID: 0, Kind: aig.KindFalse},
			{ID: 1, Kind: aig.KindInput},
		},
		Inputs:      []aig.NodeID{1},
		Constraints: []aig.Edge{aig.NewEdge(1, false), aig.NewEdge(1, true)},
		Bads:        []aig.Edge{aig.ConstantEdge(false)},
	}
	if _, err := Build(a); err == nil {
		t.Fatalf("expected contradictory constraints to surface as a build error")
	}
}
