package graph

import "slices"

// Clone returns a deep copy of the document. The copy shares no nodes,
// graphs, edges or payload bytes with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		Root:   d.Root.Clone(),
		Header: slices.Clone(d.Header),
	}
}

// Clone returns a deep copy of n and its whole subtree, including the
// identifier counters of every nested graph.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := n.shallowCopy()
	type frame struct{ src, dst *Node }
	stack := []frame{{n, out}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.src.Graph == nil {
			continue
		}
		g := cur.src.Graph.shallowCopy()
		for i, c := range cur.src.Graph.Nodes {
			cc := c.shallowCopy()
			g.Nodes[i] = cc
			stack = append(stack, frame{c, cc})
		}
		cur.dst.Graph = g
	}
	return out
}

func (n *Node) shallowCopy() *Node {
	return &Node{
		ID:    n.ID,
		Style: n.Style,
		Class: n.Class,
		Data:  slices.Clone(n.Data),
	}
}

// shallowCopy copies the graph's edges and counters and allocates a node
// slice of the same length for the caller to fill.
func (g *Graph) shallowCopy() *Graph {
	edges := make([]Edge, len(g.Edges))
	for i, e := range g.Edges {
		e.Data = slices.Clone(e.Data)
		edges[i] = e
	}
	return &Graph{
		ID:       g.ID,
		Nodes:    make([]*Node, len(g.Nodes)),
		Edges:    edges,
		nextNode: g.nextNode,
		nextEdge: g.nextEdge,
	}
}
