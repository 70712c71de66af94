// Package model builds the transition-relation CNF and the derived maps
// (init, next/previous) IC3 needs from a parsed AIG, per the Tseitin
// encoding and preprocessing pipeline in original_source's model.rs.
package model

import (
	"github.com/cbarrett/ic3go/aig"
	"github.com/cbarrett/ic3go/logic"
	"github.com/cbarrett/ic3go/satsolver"
	"github.com/pkg/errors"
)

// ErrTransitionUnsat is returned when the preprocessing solver finds the
// transition CNF unsatisfiable while loading it, which should only happen
// on malformed input (e.g. an AIG whose constraints are self-contradictory).
var ErrTransitionUnsat = errors.New("model: transition relation is unsatisfiable")

// Model is the canonical transition relation: a CNF over AIG node vars plus
// one fresh prime variable per latch, along with the maps IC3 needs to
// project cubes between a latch and its next-state prime.
type Model struct {
	Cnf         logic.Cnf
	NumVars     int
	Inputs      []logic.Var
	Latchs      []logic.Var
	Primes      []logic.Var // parallel to Latchs
	Init        map[logic.Var]bool
	Bad         logic.Lit
	Constraints []logic.Lit

	latchToPrime map[logic.Var]logic.Var
	primeToLatch map[logic.Var]logic.Var
}

// Build constructs the transition model from a, per spec.md §4.B:
// allocate node + prime variables, Tseitin-encode the logic cone of
// next/constraint/bad edges, equate each latch's next literal with its
// prime, assert constraints as units, freeze the interface variables, and
// run bounded variable elimination over the rest.
func Build(a *aig.Aig) (*Model, error) {
	s := satsolver.NewSimp()

	falseVar := s.NewVar() // matches AIG node 0 (constant false)
	s.AddClause(logic.Clause{logic.NewLit(falseVar, false)})
	for i := 1; i < a.NumNodes(); i++ {
		s.NewVar()
	}

	primes := make([]logic.Var, len(a.Latchs))
	latchToPrime := make(map[logic.Var]logic.Var, len(a.Latchs))
	primeToLatch := make(map[logic.Var]logic.Var, len(a.Latchs))
	for i, l := range a.Latchs {
		p := s.NewVar()
		primes[i] = p
		latchToPrime[logic.Var(l.Input)] = p
		primeToLatch[p] = logic.Var(l.Input)
	}

	roots := make([]aig.Edge, 0, len(a.Latchs)+len(a.Constraints)+1)
	for _, l := range a.Latchs {
		roots = append(roots, l.Next)
	}
	roots = append(roots, a.Constraints...)
	roots = append(roots, a.Bad())
	for _, cl := range a.LogicCone(roots...) {
		s.AddClause(cl)
	}

	for i, l := range a.Latchs {
		nextLit := l.Next.ToLit()
		primeLit := logic.NewLit(primes[i], true)
		s.AddClause(logic.Clause{primeLit.Not(), nextLit})
		s.AddClause(logic.Clause{primeLit, nextLit.Not()})
	}

	constraintLits := make([]logic.Lit, len(a.Constraints))
	for i, c := range a.Constraints {
		constraintLits[i] = c.ToLit()
		s.AddClause(logic.Clause{constraintLits[i]})
	}

	for _, id := range a.Inputs {
		s.SetFrozen(logic.Var(id), true)
	}
	for _, l := range a.Latchs {
		s.SetFrozen(logic.Var(l.Input), true)
	}
	for _, p := range primes {
		s.SetFrozen(p, true)
	}
	for _, l := range constraintLits {
		s.SetFrozen(l.Var(), true)
	}
	badLit := a.Bad().ToLit()
	s.SetFrozen(badLit.Var(), true)

	s.Eliminate(true)

	if res := s.Solve(nil); !res.Sat {
		return nil, ErrTransitionUnsat
	}

	inputs := make([]logic.Var, len(a.Inputs))
	for i, id := range a.Inputs {
		inputs[i] = logic.Var(id)
	}
	latchs := make([]logic.Var, len(a.Latchs))
	for i, l := range a.Latchs {
		latchs[i] = logic.Var(l.Input)
	}
	init := make(map[logic.Var]bool, len(a.Latchs))
	for _, l := range a.Latchs {
		if l.Init != nil {
			init[logic.Var(l.Input)] = *l.Init
		}
	}

	return &Model{
		Cnf:          s.Clauses(),
		NumVars:      s.NumVar(),
		Inputs:       inputs,
		Latchs:       latchs,
		Primes:       primes,
		Init:         init,
		Bad:          badLit,
		Constraints:  constraintLits,
		latchToPrime: latchToPrime,
		primeToLatch: primeToLatch,
	}, nil
}

// Next projects a latch literal onto its prime-variable literal (same
// polarity). Panics if l's variable is not a latch; callers only ever call
// this on cubes drawn from frame cubes (latch literals only, by invariant).
func (m *Model) Next(l logic.Lit) logic.Lit {
	p, ok := m.latchToPrime[l.Var()]
	if !ok {
		panic("model: Next called on a non-latch literal")
	}
	return logic.NewLit(p, l.Polarity())
}

// NextCube projects every literal of c through Next.
func (m *Model) NextCube(c logic.Cube) logic.Cube {
	out := make(logic.Cube, len(c))
	for i, l := range c {
		out[i] = m.Next(l)
	}
	return out
}

// Previous is the inverse of Next: projects a prime literal back onto its
// latch literal.
func (m *Model) Previous(l logic.Lit) logic.Lit {
	v, ok := m.primeToLatch[l.Var()]
	if !ok {
		panic("model: Previous called on a non-prime literal")
	}
	return logic.NewLit(v, l.Polarity())
}

// PreviousCube projects every literal of c through Previous.
func (m *Model) PreviousCube(c logic.Cube) logic.Cube {
	out := make(logic.Cube, len(c))
	for i, l := range c {
		out[i] = m.Previous(l)
	}
	return out
}

// InitCubes returns, for every latch with a defined init bit b, the
// singleton cube {¬latch_lit_at_b}: the frame-0 blocking cube per
// spec.md §4.G (added to frame 0 one per latch, so that ¬C asserted into
// solver 0 becomes the unit clause fixing that latch to b).
func (m *Model) InitCubes() []logic.Cube {
	cubes := make([]logic.Cube, 0, len(m.Init))
	for _, v := range m.Latchs {
		if b, ok := m.Init[v]; ok {
			cubes = append(cubes, logic.Cube{logic.NewLit(v, !b)})
		}
	}
	return cubes
}
