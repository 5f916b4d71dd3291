// Package kripke implements a Kripke structure: a directed graph of states
// extended with a set of initial states and a labelling function mapping
// each state to the atomic propositions that hold there.
package kripke

import (
	"fmt"

	"github.com/rfielding/ctlcheck/graph"
)

// Kripke is a DiGraph plus an initial-state set S0 and a labelling function
// L. Invariants: S0 is a subset of the graph's nodes; L has an entry
// (possibly empty) for every state.
type Kripke struct {
	g    *graph.DiGraph
	s0   graph.NodeSet
	labs map[graph.Node]map[string]struct{}
}

// New builds a Kripke structure over states S, initial states S0 (must be a
// subset of S), transitions R, and labelling L. States absent from L get the
// empty label set.
func New(S graph.NodeSet, S0 graph.NodeSet, R [][2]graph.Node, L map[graph.Node]map[string]struct{}) (*Kripke, error) {
	for s0 := range S0 {
		if !S.Contains(s0) {
			return nil, fmt.Errorf("initial state %d: %w", s0, graph.ErrNodeMissing)
		}
	}

	g := graph.New(S.Sorted(), R)
	labs := make(map[graph.Node]map[string]struct{}, len(g.Nodes()))
	for _, s := range g.Nodes() {
		if ap, ok := L[s]; ok {
			labs[s] = cloneAPSet(ap)
		} else {
			labs[s] = make(map[string]struct{})
		}
	}

	return &Kripke{g: g, s0: S0.Clone(), labs: labs}, nil
}

func cloneAPSet(ap map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(ap))
	for a := range ap {
		out[a] = struct{}{}
	}
	return out
}

// States delegates to the underlying graph's node set.
func (k *Kripke) States() []graph.Node { return k.g.Nodes() }

// Transitions delegates to the underlying graph's edge set.
func (k *Kripke) Transitions() [][2]graph.Node { return k.g.Edges() }

// Next returns the successors of s, failing with a Kripke-flavored wrap of
// ErrNodeMissing if s is absent.
func (k *Kripke) Next(s graph.Node) (graph.NodeSet, error) {
	succ, err := k.g.Next(s)
	if err != nil {
		return nil, fmt.Errorf("state %d not found in Kripke structure: %w", s, graph.ErrNodeMissing)
	}
	return succ, nil
}

// InitialStates returns S0.
func (k *Kripke) InitialStates() graph.NodeSet { return k.s0.Clone() }

// Graph exposes the underlying DiGraph for callers that need raw graph
// primitives (subgraph extraction, reversal, SCC decomposition).
func (k *Kripke) Graph() *graph.DiGraph { return k.g }

// Labels returns the atomic propositions holding at s. Fails if s is absent.
func (k *Kripke) Labels(s graph.Node) (map[string]struct{}, error) {
	ap, ok := k.labs[s]
	if !ok {
		return nil, fmt.Errorf("state %d not found in Kripke structure: %w", s, graph.ErrNodeMissing)
	}
	return cloneAPSet(ap), nil
}

// Alphabet returns the union of every atomic proposition in use.
func (k *Kripke) Alphabet() map[string]struct{} {
	out := make(map[string]struct{})
	for _, ap := range k.labs {
		for a := range ap {
			out[a] = struct{}{}
		}
	}
	return out
}

// ReplaceLabellingFunction installs L, filling missing states with the empty
// set, and returns the prior labelling function.
func (k *Kripke) ReplaceLabellingFunction(L map[graph.Node]map[string]struct{}) map[graph.Node]map[string]struct{} {
	old := k.labs
	next := make(map[graph.Node]map[string]struct{}, len(k.labs))
	for _, s := range k.g.Nodes() {
		if ap, ok := L[s]; ok {
			next[s] = cloneAPSet(ap)
		} else {
			next[s] = make(map[string]struct{})
		}
	}
	k.labs = next
	return old
}

// addLabel inserts ap into state s's label set. Used internally by fairness
// labelling; s is always already a valid state at the call site.
func (k *Kripke) addLabel(s graph.Node, ap string) {
	k.labs[s][ap] = struct{}{}
}

// Clone returns an independent copy: a cloned graph and label map, so
// mutating the clone (e.g. via ReplaceLabellingFunction) never touches the
// receiver.
func (k *Kripke) Clone() *Kripke {
	labs := make(map[graph.Node]map[string]struct{}, len(k.labs))
	for s, ap := range k.labs {
		labs[s] = cloneAPSet(ap)
	}
	return &Kripke{g: k.g.Clone(), s0: k.s0.Clone(), labs: labs}
}

// Substructure returns the Kripke structure induced on V: S, S0, and L
// restricted to V, and only the transitions with both endpoints in V.
func (k *Kripke) Substructure(v graph.NodeSet) *Kripke {
	sub := k.g.Subgraph(v)
	S := graph.NewNodeSet(sub.Nodes()...)

	S0 := make(graph.NodeSet)
	for s := range k.s0 {
		if S.Contains(s) {
			S0.Add(s)
		}
	}

	L := make(map[graph.Node]map[string]struct{}, len(S))
	for s := range S {
		L[s] = cloneAPSet(k.labs[s])
	}

	out, _ := New(S, S0, sub.Edges(), L)
	return out
}
