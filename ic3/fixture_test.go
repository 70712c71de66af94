package ic3

import (
	"github.com/cbarrett/ic3go/aig"
	"github.com/cbarrett/ic3go/model"
)

func boolPtr(b bool) *bool { return &b }

// selfLoopAig builds spec.md §8's S1 fixture: one latch, no inputs,
// next=latch (self-loop), bad=latch. With init=false bad is unreachable;
// with init=true it holds in the very first state.
func selfLoopAig(init bool) *aig.Aig {
	return &aig.Aig{
		Nodes: []aig.Node{
			{ID: 0, Kind: aig.KindFalse},
			{ID: 1, Kind: aig.KindLatch},
		},
		Latchs: []aig.Latch{
			{Input: 1, Next: aig.NewEdge(1, false), Init: boolPtr(init)},
		},
		Outputs: []aig.Edge{aig.NewEdge(1, false)},
	}
}

// counterAig builds a 2-bit ripple counter: l0 toggles every step, l1
// toggles when l0 was true (l1' = l1 XOR l0), both starting at 0. Bad is
// l0 & l1, first reachable three steps after init (00 -> 10 -> 01 -> 11,
// least-significant bit first).
func counterAig() *aig.Aig {
	f := false
	return &aig.Aig{
		Nodes: []aig.Node{
			{ID: 0, Kind: aig.KindFalse},
			{ID: 1, Kind: aig.KindLatch},
			{ID: 2, Kind: aig.KindLatch},
			{ID: 3, Kind: aig.KindAnd, Fanin0: aig.NewEdge(2, false), Fanin1: aig.NewEdge(1, true)},
			{ID: 4, Kind: aig.KindAnd, Fanin0: aig.NewEdge(2, true), Fanin1: aig.NewEdge(1, false)},
			{ID: 5, Kind: aig.KindAnd, Fanin0: aig.NewEdge(3, true), Fanin1: aig.NewEdge(4, true)},
			{ID: 6, Kind: aig.KindAnd, Fanin0: aig.NewEdge(1, false), Fanin1: aig.NewEdge(2, false)},
		},
		Latchs: []aig.Latch{
			{Input: 1, Next: aig.NewEdge(1, true), Init: &f},
			{Input: 2, Next: aig.NewEdge(5, true), Init: &f},
		},
		Bads: []aig.Edge{aig.NewEdge(6, false)},
	}
}

func buildModel(t interface{ Fatalf(string, ...any) }, a *aig.Aig) *model.Model {
	m, err := model.Build(a)
	if err != nil {
		t.Fatalf("model.Build: %v", err)
	}
	return m
}
