// Package logic implements the literal/cube/clause/CNF algebra that the
// rest of ic3go is built on: polarity-tagged variables, negation, ordered
// and unordered subsumption, and the containers (Cube, Clause, Cnf, Dnf)
// used by the AIG encoder, the SAT wrapper, and the IC3 engine.
package logic

import "fmt"

// Var is a variable identifier. Var 0 is reserved for the Boolean constant.
type Var uint32

// Lit returns the positive literal for v.
func (v Var) Lit() Lit {
	return Lit(v) << 1
}

func (v Var) String() string {
	return fmt.Sprintf("%d", uint32(v))
}

// Lit is a variable tagged with a polarity, encoded two's-complement style:
// 2*var + (polarity ? 0 : 1), so that negation flips the low bit and
// ordering is lexicographic on (variable, !polarity).
type Lit uint32

// NewLit builds the literal for v with the given polarity (true = positive).
func NewLit(v Var, polarity bool) Lit {
	l := Lit(v) << 1
	if !polarity {
		l |= 1
	}
	return l
}

// Var returns the underlying variable.
func (l Lit) Var() Var {
	return Var(l >> 1)
}

// Polarity reports whether l is a positive literal.
func (l Lit) Polarity() bool {
	return l&1 == 0
}

// Not returns the negation of l in O(1).
func (l Lit) Not() Lit {
	return l ^ 1
}

// IsConstant reports whether l is the reserved constant literal for Var(0)
// with the given polarity.
func (l Lit) IsConstant(polarity bool) bool {
	return l == NewLit(Var(0), polarity)
}

func (l Lit) String() string {
	if l.Polarity() {
		return fmt.Sprintf("%d", l.Var())
	}
	return fmt.Sprintf("-%d", l.Var())
}

// Less orders literals lexicographically on (variable, !polarity), matching
// the "variable-sorted" invariant frames and assumption vectors maintain.
func Less(a, b Lit) bool {
	if a.Var() != b.Var() {
		return a.Var() < b.Var()
	}
	return a.Polarity() && !b.Polarity()
}
