package logic

// Clause is a disjunction of literals.
type Clause []Lit

// Clone returns a copy of c.
func (c Clause) Clone() Clause {
	out := make(Clause, len(c))
	copy(out, c)
	return out
}

// Not negates every literal, turning the clause into the cube ¬C.
func (c Clause) Not() Cube {
	out := make(Cube, len(c))
	for i, l := range c {
		out[i] = l.Not()
	}
	return out
}

// Cnf is a conjunction of clauses.
type Cnf []Clause

// Append adds clauses to the CNF.
func (n *Cnf) Append(clauses ...Clause) {
	*n = append(*n, clauses...)
}

// Dnf is a disjunction of cubes, i.e. a set of blocked-state cubes. Negating
// a Dnf yields the Cnf of the corresponding clauses (one per cube), which is
// exactly how a frame's cube set becomes the clauses asserted into its
// solver.
type Dnf []Cube

// Not negates every cube in d into its clause, returning the conjunction of
// those clauses.
func (d Dnf) Not() Cnf {
	out := make(Cnf, len(d))
	for i, c := range d {
		out[i] = c.Not()
	}
	return out
}
