package satsolver

import "github.com/cbarrett/ic3go/logic"

// clause is the solver's internal clause representation. The first two
// literals are the watched pair; dead clauses are left in place (other
// clauses' watch lists may still reference them) and skipped lazily.
type clause struct {
	lits []logic.Lit
	dead bool
}

// litIndex maps a literal to a dense watch-list index.
func litIndex(l logic.Lit) int {
	return int(l)
}
