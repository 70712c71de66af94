package ic3

import (
	"sort"

	"github.com/cbarrett/ic3go/logic"
)

// activityDecay is applied to every variable's score before a pump, per
// spec.md §4.E.
const activityDecay = 0.99

// Activity tracks a per-variable score used to bias MIC's literal-drop
// order and lift's predecessor-literal order. The engine keeps two
// independent instances: the primary activity and, when --cav23 is set, a
// second one pumped only when propagate pushes a cube forward; MIC reads it
// as a tie-break when ordering literal drops.
type Activity struct {
	scores map[logic.Var]float64
}

// NewActivity returns an Activity with every variable starting at zero.
func NewActivity() *Activity {
	return &Activity{scores: make(map[logic.Var]float64)}
}

// Score returns v's current activity score.
func (a *Activity) Score(v logic.Var) float64 {
	return a.scores[v]
}

// Pump decays every tracked score by activityDecay, then adds 1.0 to each
// literal's variable in c.
func (a *Activity) Pump(c logic.Cube) {
	for v := range a.scores {
		a.scores[v] *= activityDecay
	}
	for _, l := range c {
		a.scores[l.Var()]++
	}
}

// SortByActivity returns a copy of cube with literals ordered by their
// variable's score, ascending or descending.
func (a *Activity) SortByActivity(cube logic.Cube, ascending bool) logic.Cube {
	out := cube.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := a.Score(out[i].Var()), a.Score(out[j].Var())
		if ascending {
			return si < sj
		}
		return si > sj
	})
	return out
}

// CubeAverageActivity returns the mean score over c's variables (0 for an
// empty cube).
func (a *Activity) CubeAverageActivity(c logic.Cube) float64 {
	if len(c) == 0 {
		return 0
	}
	var sum float64
	for _, l := range c {
		sum += a.Score(l.Var())
	}
	return sum / float64(len(c))
}
