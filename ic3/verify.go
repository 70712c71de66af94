package ic3

import (
	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/model"
	"github.com/pkg/errors"
)

// ErrInvariantUnsafe means the candidate invariant does not exclude the
// bad states: propagate claimed SAFE but the candidate fails the safety
// check, an engine bug per spec.md §7.
var ErrInvariantUnsafe = errors.New("ic3: candidate invariant does not exclude bad states")

// ErrInvariantNotInductive means some cube in the candidate invariant is
// not preserved by the transition relation.
var ErrInvariantNotInductive = errors.New("ic3: candidate invariant is not inductive")

// Verify implements spec.md §4.I: after propagate reports SAFE, find the
// frame k that went empty, build a fresh solver loaded with T plus ¬c for
// every cube in frames >= k, and check both safety and consecution. The
// init check is skipped: every cube the engine learns comes from
// ConflictCube, which keeps an init-violating literal in it, so no
// invariant cube is subsumed by init.
func Verify(m *model.Model, frames *Frames) error {
	k := 0
	for i := 1; i <= frames.Depth(); i++ {
		if len(frames.At(i)) == 0 {
			k = i
			break
		}
	}

	s := newTransitionSolver(m)
	var invariant []logic.Cube
	for j := k; j <= frames.Depth(); j++ {
		for _, c := range frames.At(j) {
			s.AddClause(c.Not())
			invariant = append(invariant, c)
		}
	}

	if res := s.Solve([]logic.Lit{m.Bad}); res.Sat {
		return ErrInvariantUnsafe
	}

	for _, c := range invariant {
		res := s.Solve(m.NextCube(c))
		if res.Sat {
			return errors.Wrapf(ErrInvariantNotInductive, "cube %v is not preserved by T", c)
		}
	}
	return nil
}
