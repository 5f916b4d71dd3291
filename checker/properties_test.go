package checker

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/graph"
	"github.com/rfielding/ctlcheck/kripke"
)

var alphabet = []string{"p", "q", "r"}

func genKripke(t *rapid.T) *kripke.Kripke {
	n := rapid.IntRange(1, 6).Draw(t, "n")
	S := make(graph.NodeSet, n)
	for i := 0; i < n; i++ {
		S.Add(graph.Node(i))
	}

	var R [][2]graph.Node
	for i := 0; i < n; i++ {
		numSucc := rapid.IntRange(0, n).Draw(t, "numSucc")
		for j := 0; j < numSucc; j++ {
			dst := rapid.IntRange(0, n-1).Draw(t, "dst")
			R = append(R, [2]graph.Node{graph.Node(i), graph.Node(dst)})
		}
	}

	L := make(map[graph.Node]map[string]struct{}, n)
	for i := 0; i < n; i++ {
		ap := make(map[string]struct{})
		for _, a := range alphabet {
			if rapid.Bool().Draw(t, "has_"+a) {
				ap[a] = struct{}{}
			}
		}
		L[graph.Node(i)] = ap
	}

	k, err := kripke.New(S, graph.NewNodeSet(0), dedupeEdges(R), L)
	if err != nil {
		t.Fatalf("building Kripke: %v", err)
	}
	return k
}

// dedupeEdges drops repeated (src,dst) pairs: the generator may draw the
// same successor twice, but DiGraph has no parallel edges.
func dedupeEdges(R [][2]graph.Node) [][2]graph.Node {
	seen := make(map[[2]graph.Node]bool)
	var out [][2]graph.Node
	for _, e := range R {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// genFormula generates a well-formed CTL *state* formula: logical
// connectives combine state formulas, and every A/E immediately wraps a
// path operator (X/F/G/U/R) whose own arguments are, in turn, state
// formulas. A quantifier wrapping a bare connective isn't a legal CTL
// state formula and would send the restricted-form rewrite into an
// infinite loop (E/A's rewrite only ever recurses into its interior, it
// never changes an E/A wrapping a non-temporal child into something the
// dispatcher's EX/EU/EG cases match).
func genFormula(t *rapid.T, depth int) *ctl.Formula {
	if depth <= 0 {
		return genLeaf(t)
	}
	switch rapid.IntRange(0, 6).Draw(t, "kind") {
	case 0:
		return genLeaf(t)
	case 1:
		return ctl.Not(genFormula(t, depth-1))
	case 2:
		return ctl.Or(genFormula(t, depth-1), genFormula(t, depth-1))
	case 3:
		return ctl.And(genFormula(t, depth-1), genFormula(t, depth-1))
	case 4:
		return ctl.Imply(genFormula(t, depth-1), genFormula(t, depth-1))
	case 5:
		return ctl.E(genPathFormula(t, depth-1))
	default:
		return ctl.A(genPathFormula(t, depth-1))
	}
}

// genPathFormula generates the interior of an A/E: one of X/F/G/U/R applied
// to state formulas.
func genPathFormula(t *rapid.T, depth int) *ctl.Formula {
	switch rapid.IntRange(0, 4).Draw(t, "pathKind") {
	case 0:
		return ctl.X(genFormula(t, depth))
	case 1:
		return ctl.F(genFormula(t, depth))
	case 2:
		return ctl.G(genFormula(t, depth))
	case 3:
		return ctl.U(genFormula(t, depth), genFormula(t, depth))
	default:
		return ctl.R(genFormula(t, depth), genFormula(t, depth))
	}
}

func genLeaf(t *rapid.T) *ctl.Formula {
	if rapid.Bool().Draw(t, "isBool") {
		return ctl.BoolLit(rapid.Bool().Draw(t, "boolVal"))
	}
	return ctl.Atom(rapid.SampledFrom(alphabet).Draw(t, "atom"))
}

// TestPropertyComplement checks the complement invariant over randomly
// generated small Kripke structures and state formulas: the satisfying set
// of phi and of not(phi) partition the state space.
func TestPropertyComplement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := genKripke(t)
		phi := genFormula(t, 3)

		s := NewSession(k)
		pos, err := s.ModelCheck(phi, nil)
		if err != nil {
			t.Fatalf("checking phi: %v", err)
		}
		neg, err := s.ModelCheck(ctl.Not(phi), nil)
		if err != nil {
			t.Fatalf("checking not(phi): %v", err)
		}

		all := graph.NewNodeSet(k.States()...)
		if got := pos.Union(neg); !setsEqual(got, all) {
			t.Fatalf("union of phi and not(phi) = %v, want %v", got, all)
		}
		if overlap := pos.Intersect(neg); len(overlap) != 0 {
			t.Fatalf("phi and not(phi) overlap at %v", overlap)
		}
	})
}

// TestPropertyRestrictedEquivalence checks that checking phi directly and
// checking its restricted-form rewrite yield the same satisfying set for
// the top formula.
func TestPropertyRestrictedEquivalence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := genKripke(t)
		phi := genFormula(t, 3)

		direct, _, err := ModelCheck(k.Clone(), phi, nil)
		if err != nil {
			t.Fatalf("checking phi: %v", err)
		}
		restricted, _, err := ModelCheck(k.Clone(), phi.GetEquivalentRestrictedFormula(), nil)
		if err != nil {
			t.Fatalf("checking restricted phi: %v", err)
		}
		if !setsEqual(direct, restricted) {
			t.Fatalf("direct=%v restricted=%v", direct, restricted)
		}
	})
}

// TestPropertyLNotIdempotence checks that LNot(LNot(x)) is structurally
// equivalent (up to String()) to x for every x = LNot(phi), phi being any
// generated formula, negations included.
func TestPropertyLNotIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		phi := genFormula(t, 3)
		once := ctl.LNot(phi)
		twice := ctl.LNot(ctl.LNot(once))
		if once.String() != twice.String() {
			t.Fatalf("LNot not idempotent: once=%q twice=%q", once.String(), twice.String())
		}
	})
}

// TestPropertyFairStateMonotonicity checks that adding constraints to F can
// only shrink the fair-state set.
func TestPropertyFairStateMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := genKripke(t)
		base := []graph.NodeSet{graph.NewNodeSet(graph.Node(0))}
		extra := graph.NewNodeSet(graph.Node(rapid.IntRange(0, 5).Draw(t, "extraState")))
		withExtra := append(append([]graph.NodeSet{}, base...), extra)

		loose := k.Clone().GetFairStates(base)
		strict := k.Clone().GetFairStates(withExtra)

		for v := range strict {
			if !loose.Contains(v) {
				t.Fatalf("strict fair state %d not present in loose set", v)
			}
		}
	})
}

func setsEqual(a, b graph.NodeSet) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}
