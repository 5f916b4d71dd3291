package ctl

// LNot applies "smart negation": it cancels a double negation instead of
// piling up Not wrappers. LNot(¬¬psi) = LNot(psi) (recursively, so
// LNot(¬¬¬¬psi) = LNot(psi) too); LNot(¬psi) = psi; otherwise
// LNot(phi) = ¬phi. The result is always equivalent to ¬phi.
func LNot(phi *Formula) *Formula {
	if phi.Op == OpNot {
		inner := phi.Children[0]
		if inner.Op == OpNot {
			return LNot(inner.Children[0])
		}
		return inner
	}
	return Not(phi)
}

// GetEquivalentRestrictedFormula rewrites phi, bottom-up, into the
// restricted fragment {¬, ∨, EX, EU, EG, atomic, bool}. A/And/Imply/R/F/G
// are all expressed via their standard duals over that fragment; E keeps its
// path operator (X/U/G/R rebuilt over restricted arguments, F turned into
// U(true, ·)). E(R) is left for the checker, which resolves it directly, and
// A's dual may leave an E(F) that a further rewrite turns into E(U).
func (phi *Formula) GetEquivalentRestrictedFormula() *Formula {
	switch phi.Op {
	case OpBool:
		return BoolLit(phi.Val)
	case OpAtomic:
		return Atom(phi.Name)
	case OpNot:
		return LNot(phi.Children[0].GetEquivalentRestrictedFormula())
	case OpOr:
		return Or(
			phi.Children[0].GetEquivalentRestrictedFormula(),
			phi.Children[1].GetEquivalentRestrictedFormula(),
		)
	case OpAnd:
		return Not(Or(
			LNot(phi.Children[0].GetEquivalentRestrictedFormula()),
			LNot(phi.Children[1].GetEquivalentRestrictedFormula()),
		))
	case OpImply:
		return Or(
			LNot(phi.Children[0].GetEquivalentRestrictedFormula()),
			phi.Children[1].GetEquivalentRestrictedFormula(),
		)
	case OpE:
		// G and R keep their operator under E: their stand-alone rewrites
		// (Not(U(...))) would leave E wrapping a Not, which the dispatcher
		// can never reduce.
		inner := phi.Children[0]
		switch inner.Op {
		case OpG:
			return E(G(inner.Children[0].GetEquivalentRestrictedFormula()))
		case OpR:
			return E(R(
				inner.Children[0].GetEquivalentRestrictedFormula(),
				inner.Children[1].GetEquivalentRestrictedFormula(),
			))
		}
		return E(inner.GetEquivalentRestrictedFormula())
	case OpA:
		// Dual for the path operator under A: ¬E(dual-operator). Naively
		// wrapping the whole restricted interior in LNot (¬E¬phi') only
		// cancels cleanly when phi''s restricted form already starts with
		// Not (true for G and R); for X/F/U it produces E(¬(...)), a shape
		// the dispatcher can never reduce to EX/EU/EG, so it loops forever.
		// dualPath pushes the negation through the specific operator first
		// (¬Xp≡X¬p, ¬Fp≡G¬p, ¬Gp≡F¬p, ¬(pUq)≡¬pR¬q, ¬(pRq)≡¬pU¬q), which
		// always leaves E wrapping a genuine path operator.
		return Not(E(dualPath(phi.Children[0])))
	case OpX:
		return X(phi.Children[0].GetEquivalentRestrictedFormula())
	case OpU:
		return U(
			phi.Children[0].GetEquivalentRestrictedFormula(),
			phi.Children[1].GetEquivalentRestrictedFormula(),
		)
	case OpR:
		return Not(U(
			LNot(phi.Children[0].GetEquivalentRestrictedFormula()),
			LNot(phi.Children[1].GetEquivalentRestrictedFormula()),
		))
	case OpF:
		return U(BoolLit(true), phi.Children[0].GetEquivalentRestrictedFormula())
	case OpG:
		return Not(U(BoolLit(true), LNot(phi.Children[0].GetEquivalentRestrictedFormula())))
	default:
		panic("ctl: unknown opcode in GetEquivalentRestrictedFormula")
	}
}

// dualPath returns the path formula equivalent to ¬phi for phi a path
// operator node (X/F/G/U/R), distributing the negation over phi's arguments
// instead of wrapping the whole node. Only called on A's immediate child, so
// phi is always one of these five opcodes.
func dualPath(phi *Formula) *Formula {
	switch phi.Op {
	case OpX:
		return X(LNot(phi.Children[0].GetEquivalentRestrictedFormula()))
	case OpF:
		return G(LNot(phi.Children[0].GetEquivalentRestrictedFormula()))
	case OpG:
		return F(LNot(phi.Children[0].GetEquivalentRestrictedFormula()))
	case OpU:
		return R(
			LNot(phi.Children[0].GetEquivalentRestrictedFormula()),
			LNot(phi.Children[1].GetEquivalentRestrictedFormula()),
		)
	case OpR:
		return U(
			LNot(phi.Children[0].GetEquivalentRestrictedFormula()),
			LNot(phi.Children[1].GetEquivalentRestrictedFormula()),
		)
	default:
		panic("ctl: A must wrap a path operator (X/F/G/U/R)")
	}
}

// GetEquivalentNonFairFormula translates phi, which may be checked under a
// fairness constraint, into plain CTL over a model where fairAP already
// labels every fair state. Atomic propositions pick up an implicit "and
// fair" conjunct; E/A insert the fairness check at the quantifier boundary
// ("there exists a fair path on which phi holds" / its dual).
func (phi *Formula) GetEquivalentNonFairFormula(fairAP *Formula) *Formula {
	switch phi.Op {
	case OpBool:
		return BoolLit(phi.Val)
	case OpAtomic:
		return And(Atom(phi.Name), fairAP)
	case OpNot:
		return Not(phi.Children[0].GetEquivalentNonFairFormula(fairAP))
	case OpOr:
		return Or(
			phi.Children[0].GetEquivalentNonFairFormula(fairAP),
			phi.Children[1].GetEquivalentNonFairFormula(fairAP),
		)
	case OpAnd:
		return And(
			phi.Children[0].GetEquivalentNonFairFormula(fairAP),
			phi.Children[1].GetEquivalentNonFairFormula(fairAP),
		)
	case OpImply:
		return Imply(
			phi.Children[0].GetEquivalentNonFairFormula(fairAP),
			phi.Children[1].GetEquivalentNonFairFormula(fairAP),
		)
	case OpE:
		inner := phi.Children[0].GetEquivalentNonFairFormula(fairAP)
		return E(LNot(And(fairAP, inner)))
	case OpA:
		inner := phi.Children[0].GetEquivalentNonFairFormula(fairAP)
		return A(LNot(And(LNot(inner), fairAP)))
	case OpX:
		return X(phi.Children[0].GetEquivalentNonFairFormula(fairAP))
	case OpU:
		return U(
			phi.Children[0].GetEquivalentNonFairFormula(fairAP),
			phi.Children[1].GetEquivalentNonFairFormula(fairAP),
		)
	case OpR:
		return R(
			phi.Children[0].GetEquivalentNonFairFormula(fairAP),
			phi.Children[1].GetEquivalentNonFairFormula(fairAP),
		)
	case OpF:
		return F(phi.Children[0].GetEquivalentNonFairFormula(fairAP))
	case OpG:
		return G(phi.Children[0].GetEquivalentNonFairFormula(fairAP))
	default:
		panic("ctl: unknown opcode in GetEquivalentNonFairFormula")
	}
}
