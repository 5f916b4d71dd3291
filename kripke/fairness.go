package kripke

import (
	"strconv"

	"github.com/rfielding/ctlcheck/graph"
)

// isFairSCC reports whether scc is nontrivial (size >= 2, or a singleton
// with a self-loop) and intersects every constraint set in F.
func isFairSCC(g *graph.DiGraph, scc graph.NodeSet, F []graph.NodeSet) bool {
	if !g.IsNontrivial(scc) {
		return false
	}
	for _, P := range F {
		if len(scc.Intersect(P)) == 0 {
			return false
		}
	}
	return true
}

// GetFairStates returns the states from which a fair path exists: states
// that can reach some fair SCC of the full Kripke graph. A path is fair iff
// it visits every set in F infinitely often, which an SCC can sustain iff
// the SCC is nontrivial and meets every constraint set.
func (k *Kripke) GetFairStates(F []graph.NodeSet) graph.NodeSet {
	fairSet := make(graph.NodeSet)
	for _, scc := range k.g.ComputeSCCs() {
		if isFairSCC(k.g, scc, F) {
			fairSet = fairSet.Union(scc)
		}
	}
	return k.g.Reversed().ReachableFrom(fairSet)
}

// LabelFairStates assigns a fresh atomic proposition to every fair state and
// returns that proposition's name. It tries "fair", then "fair0", "fair1",
// ... until it finds one absent from the current alphabet.
func (k *Kripke) LabelFairStates(F []graph.NodeSet) string {
	alphabet := k.Alphabet()
	label := "fair"
	for i := 0; ; i++ {
		if _, taken := alphabet[label]; !taken {
			break
		}
		label = "fair" + strconv.Itoa(i)
	}

	for s := range k.GetFairStates(F) {
		k.addLabel(s, label)
	}
	return label
}
