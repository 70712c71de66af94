package aig

import "github.com/cbarrett/ic3go/logic"

// LogicCone Tseitin-encodes the fan-in closure of roots: a reverse
// node-order sweep collects every AND node reachable from roots (through
// either polarity, since a later AND may reference ¬n), then emits the
// standard 3 clauses per AND gate: (¬n∨a), (¬n∨b), (n∨¬a∨¬b), with fan-in
// polarities folded in. This mirrors aig-rs's get_optimized_cnf and is the
// encoder the model builder uses for the transition relation's logic cone
// (spec.md §4.B step 3, §4.K).
func (a *Aig) LogicCone(roots ...Edge) logic.Cnf {
	referenced := make(map[Edge]bool, len(roots)*2)
	for _, r := range roots {
		referenced[r] = true
	}
	var out logic.Cnf
	for i := len(a.Nodes) - 1; i >= 1; i-- {
		n := a.Nodes[i]
		if n.Kind != KindAnd {
			continue
		}
		edge := NewEdge(n.ID, false)
		if !referenced[edge] && !referenced[edge.Not()] {
			continue
		}
		referenced[n.Fanin0] = true
		referenced[n.Fanin1] = true
		nLit := logic.NewLit(logic.Var(n.ID), true)
		a0 := n.Fanin0.ToLit()
		a1 := n.Fanin1.ToLit()
		out.Append(
			logic.Clause{nLit.Not(), a0},
			logic.Clause{nLit.Not(), a1},
		)
		referenced[n.Fanin0.Not()] = true
		referenced[n.Fanin1.Not()] = true
		out.Append(logic.Clause{nLit, a0.Not(), a1.Not()})
	}
	return out
}

// Cnf encodes every AND gate in the graph unconditionally (no logic-cone
// restriction), plus a unit clause per invariant constraint. It is used
// only as the cross-check encoding in the test that compares it with
// LogicCone on a graph whose every node is referenced; the model builder
// always uses LogicCone to avoid encoding unreferenced AIG nodes.
func (a *Aig) Cnf() logic.Cnf {
	var out logic.Cnf
	for _, n := range a.Nodes {
		if n.Kind != KindAnd {
			continue
		}
		nLit := logic.NewLit(logic.Var(n.ID), true)
		a0 := n.Fanin0.ToLit()
		a1 := n.Fanin1.ToLit()
		out.Append(
			logic.Clause{nLit.Not(), a0},
			logic.Clause{nLit.Not(), a1},
			logic.Clause{nLit, a0.Not(), a1.Not()},
		)
	}
	for _, c := range a.Constraints {
		out.Append(logic.Clause{c.ToLit()})
	}
	return out
}
