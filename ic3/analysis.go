package ic3

import (
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cbarrett/ic3go/logic"
)

var analysisJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// SaveFrames writes frames to path as a JSON array of frames, each an
// array of cubes, each cube an array of signed integer literals (sign =
// polarity, magnitude = variable), per spec.md §6's `--save-frames`.
func SaveFrames(path string, frames *Frames) error {
	data := framesToInts(frames)
	b, err := analysisJSON.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// LoadFrames reads a frames.json file written by SaveFrames back into a
// *Frames, kept so --save-frames output is testable without re-running
// the engine.
func LoadFrames(path string) (*Frames, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data [][][]int
	if err := analysisJSON.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return framesFromInts(data), nil
}

func framesToInts(frames *Frames) [][][]int {
	out := make([][][]int, frames.Depth()+1)
	for i := range out {
		cubes := frames.At(i)
		frame := make([][]int, len(cubes))
		for j, c := range cubes {
			lits := make([]int, len(c))
			for k, l := range c {
				lits[k] = litToInt(l)
			}
			frame[j] = lits
		}
		out[i] = frame
	}
	return out
}

func framesFromInts(data [][][]int) *Frames {
	fs := make([][]logic.Cube, len(data))
	for i, frameLits := range data {
		cubes := make([]logic.Cube, len(frameLits))
		for j, lits := range frameLits {
			cube := make(logic.Cube, len(lits))
			for k, x := range lits {
				cube[k] = intToLit(x)
			}
			cubes[j] = cube
		}
		fs[i] = cubes
	}
	return &Frames{fs: fs}
}

func litToInt(l logic.Lit) int {
	v := int(l.Var())
	if !l.Polarity() {
		v = -v
	}
	return v
}

func intToLit(x int) logic.Lit {
	if x < 0 {
		return logic.NewLit(logic.Var(-x), false)
	}
	return logic.NewLit(logic.Var(x), true)
}

// Affinity computes a Jaccard-affinity matrix over invariant's cubes:
// entry [i][j] is |C_i ∩ C_j| / |C_i ∪ C_j|, a diagnostic for how much
// the learned invariant's clauses share structure (ric3::analysis::affinity).
func Affinity(invariant []logic.Cube) [][]float64 {
	n := len(invariant)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			score := jaccard(invariant[i], invariant[j])
			out[i][j] = score
			out[j][i] = score
		}
	}
	return out
}

func jaccard(a, b logic.Cube) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := len(a.Intersect(b))
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// FilterByVars projects every cube in invariant onto vars, dropping
// literals whose variable is not in the set (ric3::analysis::filter),
// used to label affinity clusters by a chosen subset of latches.
func FilterByVars(invariant []logic.Cube, vars map[logic.Var]bool) []logic.Cube {
	out := make([]logic.Cube, len(invariant))
	for i, c := range invariant {
		out[i] = c.Filter(func(l logic.Lit) bool { return vars[l.Var()] })
	}
	return out
}
