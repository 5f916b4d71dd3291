// Package checker implements the recursive, memoized labelling
// model-checker: for each subformula encountered it computes the set of
// states satisfying it, keyed by the subformula's canonical string in a
// session-local labelling map.
package checker

import (
	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/graph"
	"github.com/rfielding/ctlcheck/kripke"
)

// Session holds the labelling map for one ModelCheck call. A fresh Session
// is created per call; nothing here is safe for concurrent reuse across
// checks of unrelated formulas, though within a single recursive descent the
// map is simply threaded through by reference.
type Session struct {
	K *kripke.Kripke
	L map[string]graph.NodeSet
}

// NewSession creates a checker session over k with an empty labelling map.
func NewSession(k *kripke.Kripke) *Session {
	return &Session{K: k, L: make(map[string]graph.NodeSet)}
}

// ModelCheck is the top-level entry point. If F is non-empty, it labels the
// fair states of K with a fresh atomic proposition and rewrites phi into its
// non-fair equivalent before checking. It returns the set of states
// satisfying the (possibly rewritten) formula; the full labelling map built
// along the way is available as s.L for callers that want every
// subformula's satisfying set.
func (s *Session) ModelCheck(phi *ctl.Formula, F []graph.NodeSet) (graph.NodeSet, error) {
	if len(F) > 0 {
		fairName := s.K.LabelFairStates(F)
		phi = phi.GetEquivalentNonFairFormula(ctl.Atom(fairName))
	}
	return s.checkStateFormula(phi)
}

// ModelCheck is the package-level convenience wrapper: it builds a fresh
// Session over k, runs the check, and returns both the satisfying set for
// phi and the full labelling map accumulated along the way.
func ModelCheck(k *kripke.Kripke, phi *ctl.Formula, F []graph.NodeSet) (graph.NodeSet, map[string]graph.NodeSet, error) {
	s := NewSession(k)
	result, err := s.ModelCheck(phi, F)
	if err != nil {
		return nil, nil, err
	}
	return result, s.L, nil
}

// memo returns the cached set for key if present; otherwise it reserves the
// key with an empty placeholder (so a shared subformula encountered again
// mid-computation is recognized rather than recomputed) and reports that
// the caller must still do the work.
func (s *Session) memo(key string) (graph.NodeSet, bool) {
	if v, ok := s.L[key]; ok {
		return v, true
	}
	s.L[key] = make(graph.NodeSet)
	return nil, false
}
