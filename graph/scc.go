package graph

// frame is one level of the explicit work stack used by ComputeSCCs in
// place of the recursive DFS a textbook Tarjan implementation would use.
// i tracks which neighbor to descend into next; when i reaches len(neighbors)
// the frame is ready to be post-order finalized.
type frame struct {
	v         Node
	neighbors []Node
	i         int
}

// ComputeSCCs partitions the reachable nodes into strongly connected
// components using an iterative Tarjan algorithm: an explicit work stack
// replaces call-stack recursion so deep graphs can't overflow it. Every node
// appears in exactly one component. Components are emitted in reverse
// topological order of the condensation: a component is emitted before any
// component that can reach it.
func (g *DiGraph) ComputeSCCs() []NodeSet {
	var (
		index   int
		disc    = make(map[Node]int, len(g.next))
		low     = make(map[Node]int, len(g.next))
		onStack = make(map[Node]bool, len(g.next))
		stack   []Node
		result  []NodeSet
	)

	push := func(work *[]frame, v Node) {
		disc[v] = index
		low[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true
		*work = append(*work, frame{v: v, neighbors: g.next[v].Sorted()})
	}

	for _, start := range g.Nodes() {
		if _, seen := disc[start]; seen {
			continue
		}

		var work []frame
		push(&work, start)

		for len(work) > 0 {
			top := &work[len(work)-1]

			if top.i < len(top.neighbors) {
				w := top.neighbors[top.i]
				top.i++
				if _, seen := disc[w]; !seen {
					push(&work, w)
				} else if onStack[w] && disc[w] < low[top.v] {
					low[top.v] = disc[w]
				}
				continue
			}

			// Post-order: all of v's children have been explored.
			v := top.v
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}

			if low[v] == disc[v] {
				var comp []Node
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				result = append(result, NewNodeSet(comp...))
			}
		}
	}

	return result
}

// IsNontrivial reports whether an SCC is nontrivial within g: size >= 2, or
// a singleton whose single element has a self-loop in g.
func (g *DiGraph) IsNontrivial(scc NodeSet) bool {
	if len(scc) >= 2 {
		return true
	}
	for v := range scc {
		return g.next[v].Contains(v)
	}
	return false
}
