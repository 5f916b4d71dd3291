// Package ctl implements the CTL formula algebra: an immutable syntax tree
// with a canonical string rendering and two semantics-preserving rewrites —
// to the restricted {¬, ∨, EX, EU, EG, atomic, bool} fragment, and to a
// fair-paths encoding over an augmented model.
package ctl

// OpCode discriminates a Formula's node kind. Formula is a tagged variant
// rather than a class hierarchy: every operator-specific behavior is an
// exhaustive switch over OpCode instead of virtual dispatch.
type OpCode int

const (
	OpBool OpCode = iota
	OpAtomic
	OpNot
	OpOr
	OpAnd
	OpImply
	OpA
	OpE
	OpX
	OpF
	OpG
	OpU
	OpR
)

// Formula is an immutable CTL syntax-tree node. Children may be shared by
// multiple parents (the tree is really a DAG); nothing here ever mutates a
// Formula after construction, so sharing is safe. Val and Name are only
// meaningful for OpBool and OpAtomic respectively.
type Formula struct {
	Op       OpCode
	Children []*Formula
	Val      bool
	Name     string
}

// BoolLit builds the boolean constant true or false.
func BoolLit(v bool) *Formula { return &Formula{Op: OpBool, Val: v} }

// Atom builds an atomic proposition reference.
func Atom(name string) *Formula { return &Formula{Op: OpAtomic, Name: name} }

// Not builds ¬phi.
func Not(phi *Formula) *Formula { return &Formula{Op: OpNot, Children: []*Formula{phi}} }

// Or builds phi ∨ psi.
func Or(phi, psi *Formula) *Formula { return &Formula{Op: OpOr, Children: []*Formula{phi, psi}} }

// And builds phi ∧ psi.
func And(phi, psi *Formula) *Formula { return &Formula{Op: OpAnd, Children: []*Formula{phi, psi}} }

// Imply builds phi → psi.
func Imply(phi, psi *Formula) *Formula {
	return &Formula{Op: OpImply, Children: []*Formula{phi, psi}}
}

// A builds the universal path quantifier A(phi).
func A(phi *Formula) *Formula { return &Formula{Op: OpA, Children: []*Formula{phi}} }

// E builds the existential path quantifier E(phi).
func E(phi *Formula) *Formula { return &Formula{Op: OpE, Children: []*Formula{phi}} }

// X builds the next-state path operator X(phi).
func X(phi *Formula) *Formula { return &Formula{Op: OpX, Children: []*Formula{phi}} }

// F builds the eventually path operator F(phi).
func F(phi *Formula) *Formula { return &Formula{Op: OpF, Children: []*Formula{phi}} }

// G builds the globally path operator G(phi).
func G(phi *Formula) *Formula { return &Formula{Op: OpG, Children: []*Formula{phi}} }

// U builds the until path operator phi U psi.
func U(phi, psi *Formula) *Formula { return &Formula{Op: OpU, Children: []*Formula{phi, psi}} }

// R builds the release path operator phi R psi.
func R(phi, psi *Formula) *Formula { return &Formula{Op: OpR, Children: []*Formula{phi, psi}} }

// EX, EF, EG, EU and their A-counterparts are common enough to warrant
// direct constructors; each is just sugar over E/A composed with a
// temporal operator.
func EX(phi *Formula) *Formula    { return E(X(phi)) }
func EF(phi *Formula) *Formula    { return E(F(phi)) }
func EG(phi *Formula) *Formula    { return E(G(phi)) }
func EU(phi, psi *Formula) *Formula { return E(U(phi, psi)) }
func AX(phi *Formula) *Formula    { return A(X(phi)) }
func AF(phi *Formula) *Formula    { return A(F(phi)) }
func AG(phi *Formula) *Formula    { return A(G(phi)) }
func AU(phi, psi *Formula) *Formula { return A(U(phi, psi)) }

// IsStateFormula reports whether phi's truth is defined at a state rather
// than along a path. A, E, atomic propositions and booleans are always state
// formulas; X/F/G/U/R are always path formulas; the logical connectives are
// state formulas iff every child is.
func (phi *Formula) IsStateFormula() bool {
	switch phi.Op {
	case OpBool, OpAtomic, OpA, OpE:
		return true
	case OpX, OpF, OpG, OpU, OpR:
		return false
	default: // OpNot, OpOr, OpAnd, OpImply
		for _, c := range phi.Children {
			if !c.IsStateFormula() {
				return false
			}
		}
		return true
	}
}
