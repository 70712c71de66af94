package aig

import (
	"bufio"
	"fmt"
	"io"
)

// WriteBinary serializes a into the binary "aig" AIGER format. It is used
// only by the round-trip test: parse, re-encode, reparse, and confirm the
// latches and their next-state edges are unchanged.
func WriteBinary(w io.Writer, a *Aig) error {
	bw := bufio.NewWriter(w)
	maxVar := len(a.Nodes) - 1
	if _, err := fmt.Fprintf(bw, "aig %d %d %d %d %d %d %d\n",
		maxVar, len(a.Inputs), len(a.Latchs), len(a.Outputs), countAnds(a),
		len(a.Bads), len(a.Constraints)); err != nil {
		return err
	}
	for _, l := range a.Latchs {
		lit := edgeLiteral(l.Next)
		if l.Init == nil {
			if _, err := fmt.Fprintf(bw, "%d\n", lit); err != nil {
				return err
			}
			continue
		}
		v := 0
		if *l.Init {
			v = 1
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", lit, v); err != nil {
			return err
		}
	}
	for _, o := range a.Outputs {
		if _, err := fmt.Fprintf(bw, "%d\n", edgeLiteral(o)); err != nil {
			return err
		}
	}
	for _, b := range a.Bads {
		if _, err := fmt.Fprintf(bw, "%d\n", edgeLiteral(b)); err != nil {
			return err
		}
	}
	for _, c := range a.Constraints {
		if _, err := fmt.Fprintf(bw, "%d\n", edgeLiteral(c)); err != nil {
			return err
		}
	}
	for _, n := range a.Nodes {
		if n.Kind != KindAnd {
			continue
		}
		lhs := uint64(2 * n.ID)
		rhs0 := uint64(edgeLiteral(n.Fanin0))
		rhs1 := uint64(edgeLiteral(n.Fanin1))
		if err := writeDelta(bw, lhs-rhs0); err != nil {
			return err
		}
		if err := writeDelta(bw, rhs0-rhs1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func countAnds(a *Aig) int {
	n := 0
	for _, node := range a.Nodes {
		if node.Kind == KindAnd {
			n++
		}
	}
	return n
}

func edgeLiteral(e Edge) int {
	lit := int(e.ID) * 2
	if e.Complement {
		lit++
	}
	return lit
}
