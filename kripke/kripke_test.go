package kripke

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/ctlcheck/graph"
)

func scenarioABC(t *testing.T) *Kripke {
	t.Helper()
	S := graph.NewNodeSet(0, 1, 2)
	S0 := graph.NewNodeSet(0)
	R := [][2]graph.Node{{0, 0}, {0, 1}, {1, 2}, {2, 2}}
	L := map[graph.Node]map[string]struct{}{
		1: {"p": {}},
		2: {"q": {}},
	}
	k, err := New(S, S0, R, L)
	require.NoError(t, err)
	return k
}

func TestNewRejectsInitialStateOutsideS(t *testing.T) {
	_, err := New(graph.NewNodeSet(0), graph.NewNodeSet(5), nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, graph.ErrNodeMissing))
}

func TestNewFillsMissingLabelEntries(t *testing.T) {
	k := scenarioABC(t)
	ap, err := k.Labels(0)
	require.NoError(t, err)
	require.Empty(t, ap)
}

func TestLabelsOfMissingState(t *testing.T) {
	k := scenarioABC(t)
	_, err := k.Labels(99)
	require.Error(t, err)
	require.True(t, errors.Is(err, graph.ErrNodeMissing))
}

func TestAlphabetIsUnionOfLabels(t *testing.T) {
	k := scenarioABC(t)
	require.Equal(t, map[string]struct{}{"p": {}, "q": {}}, k.Alphabet())
}

func TestReplaceLabellingFunctionReturnsPrior(t *testing.T) {
	k := scenarioABC(t)
	newL := map[graph.Node]map[string]struct{}{0: {"r": {}}}
	old := k.ReplaceLabellingFunction(newL)
	require.Equal(t, map[string]struct{}{"p": {}}, old[1])

	ap, err := k.Labels(0)
	require.NoError(t, err)
	require.Equal(t, map[string]struct{}{"r": {}}, ap)

	ap1, err := k.Labels(1)
	require.NoError(t, err)
	require.Empty(t, ap1)
}

func TestSubstructureRestrictsS0AndL(t *testing.T) {
	k := scenarioABC(t)
	sub := k.Substructure(graph.NewNodeSet(0, 1))
	require.ElementsMatch(t, []graph.Node{0, 1}, sub.States())
	require.Equal(t, graph.NewNodeSet(0), sub.InitialStates())
}

func TestCloneIndependence(t *testing.T) {
	k := scenarioABC(t)
	clone := k.Clone()
	clone.ReplaceLabellingFunction(map[graph.Node]map[string]struct{}{1: {"zzz": {}}})

	ap, err := k.Labels(1)
	require.NoError(t, err)
	require.Equal(t, map[string]struct{}{"p": {}}, ap)
}

// fairCycleModel is a two-state cycle where every path visits both states
// infinitely often: S={0,1}, R={(0,1),(1,0)}, L(0)={p}, L(1)={}.
func fairCycleModel(t *testing.T) *Kripke {
	t.Helper()
	S := graph.NewNodeSet(0, 1)
	S0 := graph.NewNodeSet(0)
	R := [][2]graph.Node{{0, 1}, {1, 0}}
	L := map[graph.Node]map[string]struct{}{0: {"p": {}}}
	k, err := New(S, S0, R, L)
	require.NoError(t, err)
	return k
}

func TestGetFairStatesWholeCycleIsFair(t *testing.T) {
	k := fairCycleModel(t)
	F := []graph.NodeSet{graph.NewNodeSet(0)}
	require.Equal(t, graph.NewNodeSet(0, 1), k.GetFairStates(F))
}

func TestGetFairStatesUnsatisfiableConstraintIsEmpty(t *testing.T) {
	k := fairCycleModel(t)
	F := []graph.NodeSet{graph.NewNodeSet(0), graph.NewNodeSet(2)}
	require.Empty(t, k.GetFairStates(F))
}

func TestFairStateMonotonicity(t *testing.T) {
	k := fairCycleModel(t)
	loose := k.GetFairStates([]graph.NodeSet{graph.NewNodeSet(0)})
	strict := k.GetFairStates([]graph.NodeSet{graph.NewNodeSet(0), graph.NewNodeSet(2)})
	for s := range strict {
		require.True(t, loose.Contains(s))
	}
}

func TestLabelFairStatesPicksFreshName(t *testing.T) {
	k := fairCycleModel(t)
	k.addLabel(0, "fair")
	k.addLabel(1, "fair0")

	label := k.LabelFairStates([]graph.NodeSet{graph.NewNodeSet(0)})
	require.Equal(t, "fair1", label)

	ap, err := k.Labels(0)
	require.NoError(t, err)
	_, hasFresh := ap[label]
	require.True(t, hasFresh)
}
