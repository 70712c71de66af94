package ic3

import "testing"

func TestObligationQueuePopsLowestFrameThenDepth(t *testing.T) {
	q := NewObligationQueue()
	q.Push(&Obligation{Frame: 3, Depth: 0})
	q.Push(&Obligation{Frame: 1, Depth: 2})
	q.Push(&Obligation{Frame: 1, Depth: 0})
	q.Push(&Obligation{Frame: 2, Depth: 0})

	first := q.Pop()
	if first.Frame != 1 || first.Depth != 0 {
		t.Fatalf("expected (frame=1, depth=0) first, got %+v", first)
	}
	second := q.Pop()
	if second.Frame != 1 || second.Depth != 2 {
		t.Fatalf("expected (frame=1, depth=2) second, got %+v", second)
	}
	third := q.Pop()
	if third.Frame != 2 {
		t.Fatalf("expected frame=2 third, got %+v", third)
	}
	fourth := q.Pop()
	if fourth.Frame != 3 {
		t.Fatalf("expected frame=3 last, got %+v", fourth)
	}
	if q.Pop() != nil {
		t.Fatal("expected an empty queue to return nil")
	}
}

func TestObligationQueuePushCounts(t *testing.T) {
	q := NewObligationQueue()
	q.Push(&Obligation{Frame: 2})
	q.Push(&Obligation{Frame: 2})
	q.Push(&Obligation{Frame: 0})

	counts := q.PushCounts()
	if len(counts) <= 2 || counts[2] != 2 || counts[0] != 1 {
		t.Fatalf("expected push counts [1 0 2], got %v", counts)
	}
}

func TestObligationSuccessorChain(t *testing.T) {
	root := &Obligation{Frame: 0, Depth: 0}
	child := &Obligation{Frame: 1, Depth: 1, Successor: root}
	if child.Successor != root {
		t.Fatal("expected the successor link to reconstruct the counterexample trace")
	}
}
