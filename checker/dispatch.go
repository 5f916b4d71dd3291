package checker

import (
	"fmt"

	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/graph"
)

// checkStateFormula dispatches on phi's opcode. Not, Or, Bool, Atomic, and
// E wrapping X/U/G/R each have a dedicated kernel; everything else (A, And,
// Imply, R, F, G, and E wrapping F) is handled by rewriting phi to its
// restricted-fragment equivalent and recursing — the recursion's result is
// returned directly, and only the restricted form's own canonical string is
// memoized, so the top formula's satisfying set is correct even though its
// own string never gets a cache entry.
func (s *Session) checkStateFormula(phi *ctl.Formula) (graph.NodeSet, error) {
	switch phi.Op {
	case ctl.OpNot:
		return s.checkNot(phi)
	case ctl.OpOr:
		return s.checkOr(phi)
	case ctl.OpBool:
		return s.checkBool(phi)
	case ctl.OpAtomic:
		return s.checkAP(phi)
	case ctl.OpE:
		if len(phi.Children) != 1 {
			return nil, fmt.Errorf("E formula with %d children: %w", len(phi.Children), ErrInvariantViolation)
		}
		switch phi.Children[0].Op {
		case ctl.OpX:
			return s.checkEX(phi)
		case ctl.OpU:
			return s.checkEU(phi)
		case ctl.OpG:
			return s.checkEG(phi)
		case ctl.OpR:
			return s.checkER(phi)
		}
	}

	restricted := phi.GetEquivalentRestrictedFormula()
	return s.checkStateFormula(restricted)
}

// requireArity fails fast with ErrInvariantViolation when phi doesn't carry
// exactly n children, so a malformed node built with the wrong number of
// children is rejected before a kernel indexes into it, rather than
// panicking on an out-of-range access.
func requireArity(phi *ctl.Formula, n int) error {
	if len(phi.Children) != n {
		return fmt.Errorf("opcode %d formula with %d children, want %d: %w", phi.Op, len(phi.Children), n, ErrInvariantViolation)
	}
	return nil
}

// checkER implements E(phi R psi) via the standard identity
// E(phi R psi) = E(psi U (phi and psi)) or EG(psi): R has no direct kernel
// (it isn't in the restricted fragment), and rewriting it with a bare LNot
// the way the other operators do would hand the dispatcher an E wrapping a
// Not, which it can never reduce further. Memoized under phi's own string
// like the other directly-dispatched kernels (EX/EU/EG).
func (s *Session) checkER(phi *ctl.Formula) (graph.NodeSet, error) {
	if err := requireArity(phi.Children[0], 2); err != nil {
		return nil, err
	}

	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	a := phi.Children[0].Children[0]
	b := phi.Children[0].Children[1]
	equivalent := ctl.Or(ctl.EU(b, ctl.And(a, b)), ctl.EG(b))

	result, err := s.checkStateFormula(equivalent)
	if err != nil {
		return nil, err
	}
	for v := range result {
		s.L[key].Add(v)
	}
	return s.L[key], nil
}

func (s *Session) checkBool(phi *ctl.Formula) (graph.NodeSet, error) {
	key := phi.String()
	if v, ok := s.L[key]; ok {
		return v, nil
	}
	if phi.Val {
		result := graph.NewNodeSet(s.K.States()...)
		s.L[key] = result
		return result, nil
	}
	result := make(graph.NodeSet)
	s.L[key] = result
	return result, nil
}

func (s *Session) checkAP(phi *ctl.Formula) (graph.NodeSet, error) {
	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	for _, state := range s.K.States() {
		ap, err := s.K.Labels(state)
		if err != nil {
			return nil, fmt.Errorf("checking atomic %q: %w", phi.Name, ErrInvariantViolation)
		}
		if _, ok := ap[phi.Name]; ok {
			s.L[key].Add(state)
		}
	}
	return s.L[key], nil
}

func (s *Session) checkNot(phi *ctl.Formula) (graph.NodeSet, error) {
	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	subResult, err := s.checkStateFormula(phi.Children[0])
	if err != nil {
		return nil, err
	}

	for _, state := range s.K.States() {
		if !subResult.Contains(state) {
			s.L[key].Add(state)
		}
	}
	return s.L[key], nil
}

func (s *Session) checkOr(phi *ctl.Formula) (graph.NodeSet, error) {
	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	for _, child := range phi.Children {
		childResult, err := s.checkStateFormula(child)
		if err != nil {
			return nil, err
		}
		for v := range childResult {
			s.L[key].Add(v)
		}
	}
	return s.L[key], nil
}

// checkEX implements _checkEX: phi = E(X(psi)). The result is recorded under
// phi's string and also under its X(psi) interior's string.
func (s *Session) checkEX(phi *ctl.Formula) (graph.NodeSet, error) {
	if err := requireArity(phi.Children[0], 1); err != nil {
		return nil, err
	}

	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	psi := phi.Children[0].Children[0]
	psiResult, err := s.checkStateFormula(psi)
	if err != nil {
		return nil, err
	}

	for _, e := range s.K.Transitions() {
		if psiResult.Contains(e[1]) {
			s.L[key].Add(e[0])
		}
	}
	s.L[phi.Children[0].String()] = s.L[key].Clone()
	return s.L[key], nil
}

// checkEU implements _checkEU: phi = E(U(psi, chi)), the least fixed point
// of "chi now, or psi now and EU(psi,chi) at some successor". The
// worklist's backward closure only admits a predecessor once it both
// satisfies psi and isn't already marked — the standard EU rule. The result
// is recorded under phi's string and also under its (psi U chi) interior's.
func (s *Session) checkEU(phi *ctl.Formula) (graph.NodeSet, error) {
	if err := requireArity(phi.Children[0], 2); err != nil {
		return nil, err
	}

	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	psi := phi.Children[0].Children[0]
	chi := phi.Children[0].Children[1]

	psiResult, err := s.checkStateFormula(psi)
	if err != nil {
		return nil, err
	}
	chiResult, err := s.checkStateFormula(chi)
	if err != nil {
		return nil, err
	}

	for v := range chiResult {
		s.L[key].Add(v)
	}
	worklist := chiResult.Sorted()

	pred := s.K.Graph().Reversed()
	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		preds, err := pred.Next(v)
		if err != nil {
			return nil, fmt.Errorf("checking EU: %w", ErrInvariantViolation)
		}
		for _, t := range preds.Sorted() {
			if !s.L[key].Contains(t) && psiResult.Contains(t) {
				s.L[key].Add(t)
				worklist = append(worklist, t)
			}
		}
	}
	s.L[phi.Children[0].String()] = s.L[key].Clone()
	return s.L[key], nil
}

// checkEG implements _checkEG: phi = E(G(psi)). Seeds the result with every
// nontrivial SCC of the subgraph induced by psi's satisfying states, then
// backward-closes through predecessors that also satisfy psi. Seeding from
// nontrivial SCCs only (size >= 2, or a singleton with a self-loop) is the
// standard LTL-to-CTL EG algorithm: a trivial SCC has no cycle to sustain
// psi forever on its own.
func (s *Session) checkEG(phi *ctl.Formula) (graph.NodeSet, error) {
	if err := requireArity(phi.Children[0], 1); err != nil {
		return nil, err
	}

	key := phi.String()
	if v, done := s.memo(key); done {
		return v, nil
	}

	psi := phi.Children[0].Children[0]
	psiResult, err := s.checkStateFormula(psi)
	if err != nil {
		return nil, err
	}

	sub := s.K.Graph().Subgraph(psiResult)
	var worklist []graph.Node
	for _, scc := range sub.ComputeSCCs() {
		if sub.IsNontrivial(scc) {
			for v := range scc {
				if !s.L[key].Contains(v) {
					s.L[key].Add(v)
					worklist = append(worklist, v)
				}
			}
		}
	}

	pred := s.K.Graph().Reversed()
	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		preds, err := pred.Next(v)
		if err != nil {
			return nil, fmt.Errorf("checking EG: %w", ErrInvariantViolation)
		}
		for _, t := range preds.Sorted() {
			if psiResult.Contains(t) && !s.L[key].Contains(t) {
				s.L[key].Add(t)
				worklist = append(worklist, t)
			}
		}
	}
	return s.L[key], nil
}
