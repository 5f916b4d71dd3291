package ctl

import "fmt"

// unarySymbol maps the unary temporal opcodes to their canonical-string
// symbol. Binary temporal opcodes use binarySymbol instead.
var unarySymbol = map[OpCode]string{
	OpX: "X",
	OpF: "F",
	OpG: "G",
}

var binarySymbol = map[OpCode]string{
	OpU: "U",
	OpR: "R",
}

// String renders phi's canonical form. This is the memoization key used by
// the checker: two formulas with identical strings are treated as identical
// for labelling purposes, so the exact syntax specified here (spacing,
// parenthesization, symbol choice) must be reproduced precisely.
func (phi *Formula) String() string {
	switch phi.Op {
	case OpBool:
		if phi.Val {
			return "true"
		}
		return "false"
	case OpAtomic:
		return phi.Name
	case OpNot:
		return "not " + phi.Children[0].String()
	case OpOr:
		return fmt.Sprintf("(%s or %s)", phi.Children[0], phi.Children[1])
	case OpAnd:
		return fmt.Sprintf("(%s and %s)", phi.Children[0], phi.Children[1])
	case OpImply:
		return fmt.Sprintf("(%s -> %s)", phi.Children[0], phi.Children[1])
	case OpE:
		return "E(" + phi.Children[0].String() + ")"
	case OpA:
		return "A(" + phi.Children[0].String() + ")"
	case OpX, OpF, OpG:
		return unarySymbol[phi.Op] + "(" + phi.Children[0].String() + ")"
	case OpU, OpR:
		return fmt.Sprintf("(%s %s %s)", phi.Children[0], binarySymbol[phi.Op], phi.Children[1])
	default:
		panic(fmt.Sprintf("ctl: unknown opcode %d", phi.Op))
	}
}
