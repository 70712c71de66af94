package satsolver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cbarrett/ic3go/logic"
	"github.com/pkg/errors"
)

// ParseDIMACS parses DIMACS CNF text into a Solver, returning the solver
// and the []logic.Var corresponding to DIMACS variables 1..n (index i
// holds the logic.Var for DIMACS variable i+1). It is used only by this
// package's tests, exercising Solve/Model/Core against textbook CNF
// fixtures rather than AIG-derived ones; adapted from cespare/saturday's
// lenient DIMACS parser (comments anywhere, an optional problem line).
func ParseDIMACS(r io.Reader) (*Solver, []logic.Var, error) {
	var numVars, numClauses int
	var sawProblem bool
	var rawClauses [][]int
	var clause []int

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if sawProblem {
				return nil, nil, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, nil, errors.Errorf("malformed problem line %q", line)
			}
			var err error
			if numVars, err = strconv.Atoi(fields[2]); err != nil {
				return nil, nil, errors.Wrap(err, "malformed #vars")
			}
			if numClauses, err = strconv.Atoi(fields[3]); err != nil {
				return nil, nil, errors.Wrap(err, "malformed #clauses")
			}
			sawProblem = true
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "invalid literal %q", field)
			}
			if n == 0 {
				rawClauses = append(rawClauses, clause)
				clause = nil
				continue
			}
			clause = append(clause, n)
		}
	}
	if err := s.Err(); err != nil {
		return nil, nil, err
	}
	if len(clause) > 0 {
		rawClauses = append(rawClauses, clause)
	}
	if sawProblem && len(rawClauses) != numClauses {
		return nil, nil, fmt.Errorf("problem line specifies %d clauses, found %d", numClauses, len(rawClauses))
	}

	maxVar := numVars
	for _, c := range rawClauses {
		for _, n := range c {
			if n < 0 {
				n = -n
			}
			if n > maxVar {
				maxVar = n
			}
		}
	}

	solver := New()
	vars := make([]logic.Var, maxVar)
	for i := range vars {
		vars[i] = solver.NewVar()
	}
	for _, c := range rawClauses {
		lits := make(logic.Clause, len(c))
		for i, n := range c {
			polarity := n > 0
			if n < 0 {
				n = -n
			}
			lits[i] = logic.NewLit(vars[n-1], polarity)
		}
		solver.AddClause(lits)
	}
	return solver, vars, nil
}
