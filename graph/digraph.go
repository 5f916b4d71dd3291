package graph

import "fmt"

// DiGraph is a directed graph with no parallel edges: a mapping from node to
// the set of its direct successors. Every node that appears as the source or
// destination of an edge is present as a key, even with an empty successor
// set. Self-loops are permitted.
type DiGraph struct {
	next map[Node]NodeSet
}

// New builds a DiGraph on the given nodes plus whatever endpoints the edges
// mention; missing endpoints are auto-created.
func New(nodes []Node, edges [][2]Node) *DiGraph {
	g := &DiGraph{next: make(map[Node]NodeSet, len(nodes))}
	for _, v := range nodes {
		g.ensure(v)
	}
	for _, e := range edges {
		g.ensure(e[0])
		g.ensure(e[1])
		g.next[e[0]].Add(e[1])
	}
	return g
}

func (g *DiGraph) ensure(v Node) {
	if _, ok := g.next[v]; !ok {
		g.next[v] = make(NodeSet)
	}
}

// AddNode adds v to the graph. Fails if v already exists.
func (g *DiGraph) AddNode(v Node) error {
	if _, ok := g.next[v]; ok {
		return fmt.Errorf("add node %d: %w", v, ErrDuplicateNode)
	}
	g.next[v] = make(NodeSet)
	return nil
}

// AddEdge adds an edge from src to dst, auto-creating missing endpoints.
// Fails if the edge already exists.
func (g *DiGraph) AddEdge(src, dst Node) error {
	if succ, ok := g.next[src]; ok {
		if succ.Contains(dst) {
			return fmt.Errorf("add edge (%d,%d): %w", src, dst, ErrDuplicateEdge)
		}
	} else {
		g.next[src] = make(NodeSet)
	}
	g.ensure(dst)
	g.next[src].Add(dst)
	return nil
}

// Nodes returns the graph's nodes in ascending order.
func (g *DiGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.next))
	for v := range g.next {
		out = append(out, v)
	}
	return NewNodeSet(out...).Sorted()
}

// Edges returns every (src,dst) pair, ordered by src then dst.
func (g *DiGraph) Edges() [][2]Node {
	var out [][2]Node
	for _, src := range g.Nodes() {
		for _, dst := range g.next[src].Sorted() {
			out = append(out, [2]Node{src, dst})
		}
	}
	return out
}

// Next returns the direct successors of src. Fails if src is absent.
func (g *DiGraph) Next(src Node) (NodeSet, error) {
	succ, ok := g.next[src]
	if !ok {
		return nil, fmt.Errorf("next(%d): %w", src, ErrNodeMissing)
	}
	return succ.Clone(), nil
}

// HasNode reports whether v is a node of the graph.
func (g *DiGraph) HasNode(v Node) bool {
	_, ok := g.next[v]
	return ok
}

// Clone returns a deep-enough copy: independent successor sets per node, so
// mutating the clone never affects the receiver.
func (g *DiGraph) Clone() *DiGraph {
	out := &DiGraph{next: make(map[Node]NodeSet, len(g.next))}
	for v, succ := range g.next {
		out.next[v] = succ.Clone()
	}
	return out
}

// Subgraph returns a new DiGraph on the intersection of V with the current
// nodes, preserving exactly the edges with both endpoints retained.
func (g *DiGraph) Subgraph(v NodeSet) *DiGraph {
	var nodes []Node
	for _, n := range v.Sorted() {
		if g.HasNode(n) {
			nodes = append(nodes, n)
		}
	}
	kept := NewNodeSet(nodes...)
	var edges [][2]Node
	for _, e := range g.Edges() {
		if kept.Contains(e[0]) && kept.Contains(e[1]) {
			edges = append(edges, e)
		}
	}
	return New(nodes, edges)
}

// Reversed returns a new DiGraph with every edge direction flipped; the node
// set is preserved.
func (g *DiGraph) Reversed() *DiGraph {
	nodes := g.Nodes()
	var edges [][2]Node
	for _, e := range g.Edges() {
		edges = append(edges, [2]Node{e[1], e[0]})
	}
	return New(nodes, edges)
}

// ReachableFrom computes forward reachability from seeds via an iterative
// depth-first search over an explicit stack. The result
// always contains the seeds.
func (g *DiGraph) ReachableFrom(seeds NodeSet) NodeSet {
	reached := seeds.Clone()
	queue := seeds.Sorted()
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range g.next[s].Sorted() {
			if !reached.Contains(d) {
				reached.Add(d)
				queue = append(queue, d)
			}
		}
	}
	return reached
}
