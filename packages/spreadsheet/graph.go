package spreadsheet

import "fmt"

// graphNode holds both edge directions for one key. outgoing are the nodes
// that depend on this one, incoming are the nodes this one depends on.
type graphNode[K comparable] struct {
	outgoing map[K]struct{}
	incoming map[K]struct{}
}

func newGraphNode[K comparable]() *graphNode[K] {
	return &graphNode[K]{
		outgoing: make(map[K]struct{}),
		incoming: make(map[K]struct{}),
	}
}

func (n *graphNode[K]) hasIncomingEdges() bool { return len(n.incoming) > 0 }
func (n *graphNode[K]) hasOutgoingEdges() bool { return len(n.outgoing) > 0 }

// DependencyGraph is a directed graph where an edge from -> to means "to
// reads from". both directions are always updated together, so
// to ∈ outgoing(from) exactly when from ∈ incoming(to). a key missing from
// the graph behaves as a node without edges.
//
// not safe for concurrent use.
type DependencyGraph[K comparable] struct {
	nodes map[K]*graphNode[K]
}

// NewDependencyGraph creates a new dependency graph
func NewDependencyGraph[K comparable]() *DependencyGraph[K] {
	return &DependencyGraph[K]{
		nodes: make(map[K]*graphNode[K]),
	}
}

// getOrCreateNode gets an existing node or creates a new one
func (dg *DependencyGraph[K]) getOrCreateNode(key K) *graphNode[K] {
	if node, exists := dg.nodes[key]; exists {
		return node
	}
	node := newGraphNode[K]()
	dg.nodes[key] = node
	return node
}

// AddEdge records that to depends on from. adding an existing edge is a no-op.
func (dg *DependencyGraph[K]) AddEdge(from, to K) {
	dg.getOrCreateNode(from).outgoing[to] = struct{}{}
	dg.getOrCreateNode(to).incoming[from] = struct{}{}
}

// RemoveEdge removes the edge from -> to if present
func (dg *DependencyGraph[K]) RemoveEdge(from, to K) {
	if node, exists := dg.nodes[from]; exists {
		delete(node.outgoing, to)
	}
	if node, exists := dg.nodes[to]; exists {
		delete(node.incoming, from)
	}
}

// SetIncomingEdges replaces the full set of nodes key depends on. edges to
// predecessors not in incoming are dropped and new ones added on both
// endpoints. key is registered in the graph even when incoming is empty.
func (dg *DependencyGraph[K]) SetIncomingEdges(key K, incoming map[K]struct{}) {
	node := dg.getOrCreateNode(key)

	for previous := range node.incoming {
		if _, keep := incoming[previous]; !keep {
			dg.RemoveEdge(previous, key)
		}
	}

	for added := range incoming {
		if _, exists := node.incoming[added]; !exists {
			dg.AddEdge(added, key)
		}
	}
}

// HasEdges reports whether any node still has an incoming or outgoing edge
func (dg *DependencyGraph[K]) HasEdges() bool {
	for _, node := range dg.nodes {
		if node.hasIncomingEdges() || node.hasOutgoingEdges() {
			return true
		}
	}
	return false
}

// TopologicalSort orders every registered node so that each node comes
// after all nodes it depends on. the order among independent nodes is
// unspecified. the graph itself is not modified; a working copy is
// consumed instead. fails with ErrGraphHasCycles when no full order exists.
func (dg *DependencyGraph[K]) TopologicalSort() ([]K, error) {
	graph := dg.clone()

	sorted := make([]K, 0, len(graph.nodes))
	var independent []K
	for key, node := range graph.nodes {
		if !node.hasIncomingEdges() {
			independent = append(independent, key)
		}
	}

	for len(independent) > 0 {
		key := independent[len(independent)-1]
		independent = independent[:len(independent)-1]
		sorted = append(sorted, key)

		node := graph.nodes[key]
		for dependent := range node.outgoing {
			graph.RemoveEdge(key, dependent)
			if !graph.nodes[dependent].hasIncomingEdges() {
				independent = append(independent, dependent)
			}
		}
	}

	if graph.HasEdges() {
		return nil, fmt.Errorf("%w: %d of %d nodes could not be ordered",
			ErrGraphHasCycles, len(graph.nodes)-len(sorted), len(graph.nodes))
	}
	return sorted, nil
}

// clone returns a deep copy of the graph
func (dg *DependencyGraph[K]) clone() *DependencyGraph[K] {
	cp := &DependencyGraph[K]{
		nodes: make(map[K]*graphNode[K], len(dg.nodes)),
	}
	for key, node := range dg.nodes {
		n := &graphNode[K]{
			outgoing: make(map[K]struct{}, len(node.outgoing)),
			incoming: make(map[K]struct{}, len(node.incoming)),
		}
		for k := range node.outgoing {
			n.outgoing[k] = struct{}{}
		}
		for k := range node.incoming {
			n.incoming[k] = struct{}{}
		}
		cp.nodes[key] = n
	}
	return cp
}

// DirectDependents returns nodes directly depending on key
func (dg *DependencyGraph[K]) DirectDependents(key K) []K {
	node, exists := dg.nodes[key]
	if !exists {
		return nil
	}

	result := make([]K, 0, len(node.outgoing))
	for dependent := range node.outgoing {
		result = append(result, dependent)
	}
	return result
}

// DirectPrecedents returns nodes key directly depends on
func (dg *DependencyGraph[K]) DirectPrecedents(key K) []K {
	node, exists := dg.nodes[key]
	if !exists {
		return nil
	}

	result := make([]K, 0, len(node.incoming))
	for precedent := range node.incoming {
		result = append(result, precedent)
	}
	return result
}

// AllDependents returns every node affected by key (transitive closure),
// excluding key itself unless it sits on a cycle.
func (dg *DependencyGraph[K]) AllDependents(key K) []K {
	visited := make(map[K]struct{})
	var result []K

	stack := []K{key}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, exists := dg.nodes[current]
		if !exists {
			continue
		}
		for dependent := range node.outgoing {
			if _, seen := visited[dependent]; seen {
				continue
			}
			visited[dependent] = struct{}{}
			result = append(result, dependent)
			stack = append(stack, dependent)
		}
	}
	return result
}

// HasEdge reports whether the edge from -> to exists
func (dg *DependencyGraph[K]) HasEdge(from, to K) bool {
	node, exists := dg.nodes[from]
	if !exists {
		return false
	}
	_, ok := node.outgoing[to]
	return ok
}

// NodeCount returns the number of nodes in the graph
func (dg *DependencyGraph[K]) NodeCount() int {
	return len(dg.nodes)
}

// EdgeCount returns the number of edges in the graph
func (dg *DependencyGraph[K]) EdgeCount() int {
	count := 0
	for _, node := range dg.nodes {
		count += len(node.outgoing)
	}
	return count
}
