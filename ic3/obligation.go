package ic3

import (
	"container/heap"

	"github.com/cbarrett/ic3go/logic"
)

// Obligation is a proof obligation: "cube must be shown unreachable at
// Frame". Successor links back to the obligation this one was created to
// help block (nil at the root), forming the chain from the frame-0
// obligation that Check returns back to the bad cube, from which a
// counterexample trace can be read.
type Obligation struct {
	Frame     int
	Cube      logic.Cube
	Depth     int
	Successor *Obligation
}

type obligationHeap []*Obligation

func (h obligationHeap) Len() int { return len(h) }
func (h obligationHeap) Less(i, j int) bool {
	if h[i].Frame != h[j].Frame {
		return h[i].Frame < h[j].Frame
	}
	return h[i].Depth < h[j].Depth
}
func (h obligationHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *obligationHeap) Push(x any)   { *h = append(*h, x.(*Obligation)) }
func (h *obligationHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// ObligationQueue is the min-heap over (frame, depth) spec.md §4.G and §9
// describe: block() pushes obligations here and always pops the one with
// the lowest frame (ties broken by depth).
type ObligationQueue struct {
	h      obligationHeap
	pushes []int // pushes[f] counts obligations ever pushed at frame f, for the statistics print
}

// NewObligationQueue returns an empty queue.
func NewObligationQueue() *ObligationQueue {
	return &ObligationQueue{}
}

// Push adds o to the queue.
func (q *ObligationQueue) Push(o *Obligation) {
	heap.Push(&q.h, o)
	for len(q.pushes) <= o.Frame {
		q.pushes = append(q.pushes, 0)
	}
	q.pushes[o.Frame]++
}

// Pop removes and returns the lowest-(frame,depth) obligation, or nil if
// the queue is empty.
func (q *ObligationQueue) Pop() *Obligation {
	if q.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Obligation)
}

// Len reports the number of obligations currently queued.
func (q *ObligationQueue) Len() int { return q.h.Len() }

// PushCounts returns, per frame index, how many obligations were ever
// pushed at that frame (the "[f0, f1, ...]" statistics print).
func (q *ObligationQueue) PushCounts() []int {
	return q.pushes
}
