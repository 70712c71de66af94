package ic3

import (
	"sort"

	"github.com/cbarrett/ic3go/logic"
)

// Frames is the frame stack F_0, F_1, ..., F_depth: each frame holds the
// set of cubes whose negation is asserted as a clause in the
// correspondingly-indexed per-frame solver. Frames itself holds no solver
// reference; AddCube reports which solvers need the new clause asserted
// and leaves that side effect to the caller (MicContext.addLearnedCube in
// mic.go), keeping the
// cube-set bookkeeping here independent of the SAT layer.
type Frames struct {
	fs [][]logic.Cube
}

// NewFrames returns a stack containing only frame 0 (empty).
func NewFrames() *Frames {
	return &Frames{fs: [][]logic.Cube{nil}}
}

// Depth returns the index of the last (most recently appended) frame.
func (f *Frames) Depth() int { return len(f.fs) - 1 }

// NewFrame appends an empty frame at the top.
func (f *Frames) NewFrame() {
	f.fs = append(f.fs, nil)
}

// At returns frame k's cubes (not a copy; callers must not retain it
// across a later AddCube on the same frame).
func (f *Frames) At(k int) []logic.Cube {
	return f.fs[k]
}

// TrivialContained reports whether any frame at index >= k already holds
// a cube ordered-subsuming c.
func (f *Frames) TrivialContained(k int, c logic.Cube) bool {
	for j := k; j < len(f.fs); j++ {
		for _, cp := range f.fs[j] {
			if cp.OrderedSubsume(c) {
				return true
			}
		}
	}
	return false
}

// Parent returns the cubes in F_{k-1} that ordered-subsume c. Per
// spec.md §8, frame 0 is never considered a parent frame: Parent(c, 1)
// (and any k <= 1) returns nil without inspecting F_0.
func (f *Frames) Parent(c logic.Cube, k int) []logic.Cube {
	if k <= 1 {
		return nil
	}
	var out []logic.Cube
	for _, cp := range f.fs[k-1] {
		if cp.OrderedSubsume(c) {
			out = append(out, cp)
		}
	}
	return out
}

// AddCube implements spec.md §4.D's add_cube: it sorts c by variable,
// checks redundancy against frames >= k, then removes from each frame
// 1..=k any cube C' that c (forward-push) subsumes, recording the
// earliest frame past which a fresh ¬c clause must actually be asserted.
// It reports whether c was added and, if so, the inclusive solver range
// [begin, k] the caller must assert ¬c into.
func (f *Frames) AddCube(k int, c logic.Cube) (added bool, begin int) {
	c = c.Clone()
	c.SortByVar()

	if f.TrivialContained(k, c) {
		return false, 0
	}

	begin = 1
	for i := 1; i <= k; i++ {
		kept := f.fs[i][:0]
		for _, cp := range f.fs[i] {
			if c.OrderedSubsume(cp) {
				begin = i + 1
				continue
			}
			kept = append(kept, cp)
		}
		f.fs[i] = kept
	}
	f.fs[k] = append(f.fs[k], c)
	return true, begin
}

// SnapshotSortedByLength returns a copy of F_i's cubes sorted ascending
// by length, the order propagate pushes candidates forward in.
func (f *Frames) SnapshotSortedByLength(i int) []logic.Cube {
	cubes := make([]logic.Cube, len(f.fs[i]))
	copy(cubes, f.fs[i])
	sort.Slice(cubes, func(a, b int) bool { return len(cubes[a]) < len(cubes[b]) })
	return cubes
}

// RemoveCube deletes c (by value equality) from frame i. The engine does
// not call it: propagate's forward pushes go through AddCube, whose
// subsumption check also removes an identical cube from lower frames.
func (f *Frames) RemoveCube(i int, c logic.Cube) {
	kept := f.fs[i][:0]
	for _, cp := range f.fs[i] {
		if cp.Equal(c) {
			continue
		}
		kept = append(kept, cp)
	}
	f.fs[i] = kept
}
