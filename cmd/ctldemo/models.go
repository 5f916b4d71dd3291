// Package main implements ctldemo, a command-line driver that loads a Kripke
// structure and a set of named CTL formulas from a YAML fixture and reports
// which states satisfy a chosen formula. It is an external collaborator of
// the checker, exercising the public API the way any caller would.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/graph"
	"github.com/rfielding/ctlcheck/kripke"
)

// modelFile is the on-disk YAML shape: named states (rather than bare
// integers, for a fixture a human can write and read), transitions as
// [from, to] pairs, a label set per state, a list of fairness constraints
// (each a set of state names a fair path must visit infinitely often), and
// a set of named formulas built from formulaSpec trees instead of infix
// CTL text — this module's algebra is constructed via Go calls, not parsed
// from a string grammar, so the fixture format mirrors that directly.
type modelFile struct {
	States      []string            `yaml:"states"`
	Initial     []string            `yaml:"initial"`
	Transitions [][2]string         `yaml:"transitions"`
	Labels      map[string][]string `yaml:"labels"`
	Fairness    [][]string          `yaml:"fairness"`
	Formulas    map[string]*formulaSpec `yaml:"formulas"`
}

// formulaSpec is a YAML-decodable CTL formula tree. Op names the
// constructor ("atom", "bool", "not", "or", "and", "imply", "A", "E", "X",
// "F", "G", "U", "R"); Name and Val feed the leaf constructors; Args feed
// everything else (one child for unary operators, two for binary).
type formulaSpec struct {
	Op   string         `yaml:"op"`
	Name string         `yaml:"name,omitempty"`
	Val  *bool          `yaml:"val,omitempty"`
	Args []*formulaSpec `yaml:"args,omitempty"`
}

// build compiles a formulaSpec into a ctl.Formula.
func (f *formulaSpec) build() (*ctl.Formula, error) {
	arg := func(i int) (*ctl.Formula, error) {
		if i >= len(f.Args) {
			return nil, fmt.Errorf("op %q: missing argument %d", f.Op, i)
		}
		return f.Args[i].build()
	}

	switch f.Op {
	case "atom":
		if f.Name == "" {
			return nil, fmt.Errorf("op %q: missing name", f.Op)
		}
		return ctl.Atom(f.Name), nil
	case "bool":
		if f.Val == nil {
			return nil, fmt.Errorf("op %q: missing val", f.Op)
		}
		return ctl.BoolLit(*f.Val), nil
	case "not":
		a, err := arg(0)
		if err != nil {
			return nil, err
		}
		return ctl.Not(a), nil
	case "or", "and", "imply", "U", "R":
		a, err := arg(0)
		if err != nil {
			return nil, err
		}
		b, err := arg(1)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case "or":
			return ctl.Or(a, b), nil
		case "and":
			return ctl.And(a, b), nil
		case "imply":
			return ctl.Imply(a, b), nil
		case "U":
			return ctl.U(a, b), nil
		default:
			return ctl.R(a, b), nil
		}
	case "A", "E", "X", "F", "G":
		a, err := arg(0)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case "A":
			return ctl.A(a), nil
		case "E":
			return ctl.E(a), nil
		case "X":
			return ctl.X(a), nil
		case "F":
			return ctl.F(a), nil
		default:
			return ctl.G(a), nil
		}
	default:
		return nil, fmt.Errorf("unknown formula op %q", f.Op)
	}
}

// model is a loaded fixture: the Kripke structure plus the state name
// bookkeeping the report needs to print names instead of bare node ids.
type model struct {
	K         *kripke.Kripke
	Formulas  map[string]*ctl.Formula
	Fairness  []graph.NodeSet
	nodeNames map[graph.Node]string
	nodeIDs   map[string]graph.Node
}

// loadModel reads and compiles the fixture at path.
func loadModel(path string) (*model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var mf modelFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}

	ids := make(map[string]graph.Node, len(mf.States))
	names := make(map[graph.Node]string, len(mf.States))
	S := make(graph.NodeSet, len(mf.States))
	for i, name := range mf.States {
		n := graph.Node(i)
		ids[name] = n
		names[n] = name
		S.Add(n)
	}

	S0 := make(graph.NodeSet)
	for _, name := range mf.Initial {
		n, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("initial state %q: not in states list", name)
		}
		S0.Add(n)
	}

	var R [][2]graph.Node
	for _, t := range mf.Transitions {
		from, ok := ids[t[0]]
		if !ok {
			return nil, fmt.Errorf("transition %v: %q not in states list", t, t[0])
		}
		to, ok := ids[t[1]]
		if !ok {
			return nil, fmt.Errorf("transition %v: %q not in states list", t, t[1])
		}
		R = append(R, [2]graph.Node{from, to})
	}

	L := make(map[graph.Node]map[string]struct{}, len(mf.States))
	for name, aps := range mf.Labels {
		n, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("labels: %q not in states list", name)
		}
		ap := make(map[string]struct{}, len(aps))
		for _, a := range aps {
			ap[a] = struct{}{}
		}
		L[n] = ap
	}

	k, err := kripke.New(S, S0, R, L)
	if err != nil {
		return nil, fmt.Errorf("building Kripke structure: %w", err)
	}

	var fair []graph.NodeSet
	for _, group := range mf.Fairness {
		set := make(graph.NodeSet, len(group))
		for _, name := range group {
			n, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("fairness constraint: %q not in states list", name)
			}
			set.Add(n)
		}
		fair = append(fair, set)
	}

	formulas := make(map[string]*ctl.Formula, len(mf.Formulas))
	for name, spec := range mf.Formulas {
		phi, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", name, err)
		}
		formulas[name] = phi
	}

	return &model{K: k, Formulas: formulas, Fairness: fair, nodeNames: names, nodeIDs: ids}, nil
}

// stateName returns the fixture's name for n, falling back to its numeric
// id if n somehow isn't one of the fixture's own states.
func (m *model) stateName(n graph.Node) string {
	if name, ok := m.nodeNames[n]; ok {
		return name
	}
	return fmt.Sprintf("#%d", n)
}

// sortedNames renders a NodeSet as a sorted list of fixture state names.
func (m *model) sortedNames(set graph.NodeSet) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, m.stateName(n))
	}
	sort.Strings(out)
	return out
}
