package graph

import "errors"

// Sentinel error kinds for structural build and lookup failures. Wrap with
// fmt.Errorf("...: %w", ErrX) so callers can still errors.Is against these.
var (
	ErrNodeMissing   = errors.New("node missing")
	ErrDuplicateNode = errors.New("duplicate node")
	ErrDuplicateEdge = errors.New("duplicate edge")
)
