package checker

import "errors"

// ErrInvariantViolation is raised when a formula violates an internal
// invariant the checker relies on (wrong child count for an opcode) or
// when a lower-level graph/Kripke lookup a well-formed check should never
// trigger fails anyway (unknown state, missing labelling entry). It is
// never raised for ordinary well-formed input.
var ErrInvariantViolation = errors.New("invariant violation")
