package graph

// DefaultFontSize is the label font size given to nodes built with [Leaf]
// and [Group].
const DefaultFontSize = 12

// Leaf returns a leaf node filled with the producer colour of class.
func Leaf(id, label string, class Class) *Node {
	return &Node{
		ID:    id,
		Class: class,
		Style: Style{Label: label, Fill: class.Fill(), FontSize: DefaultFontSize},
	}
}

// Group returns a group node holding children, filled with the producer
// colour of class.
func Group(id, label string, class Class, children ...*Node) *Node {
	n := Leaf(id, label, class)
	n.Graph = NewGraph(GraphID(id))
	for _, c := range children {
		n.Graph.AddNode(c)
	}
	return n
}

// Build returns a document whose top-level graph holds nodes and edges.
func Build(nodes []*Node, edges ...Edge) *Document {
	d := New("G")
	for _, n := range nodes {
		d.Graph().AddNode(n)
	}
	for _, e := range edges {
		d.Graph().AddEdge(e)
	}
	return d
}
