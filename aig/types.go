// Package aig implements the AIGER reader and the AND-Inverter-Graph
// representation consumed by the transition model builder: nodes, inputs,
// latches, outputs, bads and constraints, plus the Tseitin encoder that
// turns a logic cone into CNF.
package aig

import "github.com/cbarrett/ic3go/logic"

// NodeID identifies a node in the AIG. Node 0 is the constant-false node.
type NodeID uint32

// Edge is a reference to a node with an optional complement (negation) flag,
// the AIG analogue of a logic.Lit but indexed by NodeID rather than Var.
type Edge struct {
	ID         NodeID
	Complement bool
}

// NewEdge builds an edge to id with the given complement flag.
func NewEdge(id NodeID, complement bool) Edge {
	return Edge{ID: id, Complement: complement}
}

// Not returns the negation of e.
func (e Edge) Not() Edge {
	return Edge{ID: e.ID, Complement: !e.Complement}
}

// NotIf negates e iff x is true.
func (e Edge) NotIf(x bool) Edge {
	if x {
		return e.Not()
	}
	return e
}

// ConstantEdge returns the edge to the constant node with the given
// polarity (true = constant-true).
func ConstantEdge(polarity bool) Edge {
	return Edge{ID: 0, Complement: polarity}
}

// ToLit converts e to the corresponding logic.Lit, treating e.ID as a
// logic.Var directly (the model builder allocates AIG node IDs and
// logic.Var IDs in lockstep, see model.Build).
func (e Edge) ToLit() logic.Lit {
	return logic.NewLit(logic.Var(e.ID), !e.Complement)
}

// EdgeFromLit is the inverse of ToLit.
func EdgeFromLit(l logic.Lit) Edge {
	return Edge{ID: NodeID(l.Var()), Complement: !l.Polarity()}
}

// Latch describes one state bit: its node id, its next-state edge, and an
// optional init value (nil means "unconstrained").
type Latch struct {
	Input NodeID
	Next  Edge
	Init  *bool
}

// NodeKind distinguishes the four AIG node shapes.
type NodeKind uint8

const (
	KindFalse NodeKind = iota
	KindInput
	KindLatch
	KindAnd
)

// Node is one AIG node. Fanin0/Fanin1 are only meaningful when Kind ==
// KindAnd.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Fanin0 Edge
	Fanin1 Edge
}

// Aig is the parsed And-Inverter Graph: a DAG whose node 0 is constant
// false, and whose internal nodes are binary ANDs with optionally
// complemented edges.
type Aig struct {
	Nodes       []Node
	Inputs      []NodeID
	Latchs      []Latch
	Outputs     []Edge
	Bads        []Edge
	Constraints []Edge
}

// NumNodes returns the total node count, including the constant node.
func (a *Aig) NumNodes() int {
	return len(a.Nodes)
}

// Bad returns the designated bad-state edge: bads[0] if present, else
// outputs[0]. Per spec.md §9, additional bads beyond index 0 are ignored.
func (a *Aig) Bad() Edge {
	if len(a.Bads) > 0 {
		return a.Bads[0]
	}
	return a.Outputs[0]
}

// LatchInitCube returns the cube of literals asserting each latch's defined
// init value (latch true in init iff Init != nil && *Init).
func (a *Aig) LatchInitCube() logic.Cube {
	var cube logic.Cube
	for _, l := range a.Latchs {
		if l.Init != nil {
			cube = append(cube, logic.NewLit(logic.Var(l.Input), *l.Init))
		}
	}
	return cube
}
