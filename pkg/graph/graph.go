package graph

// Graph is one nesting level of a compound graph: an ordered list of nodes
// and an ordered list of edges scoped to that level.
//
// Graph tracks two monotonic counters used to allocate fresh identifiers.
// Both are raised by [Graph.AddNode] and [Graph.AddEdge] from the identifiers
// they see, and never decrease, so freshly allocated identifiers cannot
// collide with existing ones regardless of sibling order.
type Graph struct {
	ID    string // Wire identifier (e.g. "n0:"), may be empty
	Nodes []*Node
	Edges []Edge

	nextNode int
	nextEdge int
}

// NewGraph creates an empty graph with the given wire identifier.
func NewGraph(id string) *Graph {
	return &Graph{ID: id}
}

// AddNode appends n and raises the node counter past n's trailing segment.
func (g *Graph) AddNode(n *Node) {
	g.Nodes = append(g.Nodes, n)
	if seg, ok := lastSegment(n.ID, nodePrefix); ok && seg >= g.nextNode {
		g.nextNode = seg + 1
	}
	if g.nextNode < len(g.Nodes) {
		g.nextNode = len(g.Nodes)
	}
}

// AddEdge appends e and raises the edge counter past e's trailing number.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
	if seq, ok := lastSegment(e.ID, edgePrefix); ok && seq >= g.nextEdge {
		g.nextEdge = seq + 1
	}
	if g.nextEdge < len(g.Edges) {
		g.nextEdge = len(g.Edges)
	}
}

// NextNodeID allocates the identifier for a new child of the node ownerID.
func (g *Graph) NextNodeID(ownerID string) string {
	id := ChildID(ownerID, g.nextNode)
	g.nextNode++
	return id
}

// NextEdgeID allocates the identifier for a new edge of this graph, whose
// owning node is ownerID (empty for the top-level graph).
func (g *Graph) NextEdgeID(ownerID string) string {
	id := EdgeID(ownerID, g.nextEdge)
	g.nextEdge++
	return id
}

// HasEdge reports whether the graph already holds an edge between source
// and target, in either direction.
func (g *Graph) HasEdge(source, target string) bool {
	probe := Edge{Source: source, Target: target}
	for _, e := range g.Edges {
		if e.SameEndpoints(probe) {
			return true
		}
	}
	return false
}

// Child returns the first node at this level with the given label.
func (g *Graph) Child(label string) *Node {
	for _, n := range g.Nodes {
		if n.Style.Label == label {
			return n
		}
	}
	return nil
}

// Scope returns the identifiers of every node in this graph and its nested
// graphs. Edges of a graph may connect any two nodes in its scope.
func (g *Graph) Scope() map[string]struct{} {
	scope := make(map[string]struct{})
	stack := []*Graph{g}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range cur.Nodes {
			scope[n.ID] = struct{}{}
			if n.Graph != nil {
				stack = append(stack, n.Graph)
			}
		}
	}
	return scope
}
