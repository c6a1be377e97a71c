package graph

import (
	"fmt"
	"strings"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// =============================================================================
// Class - Node Tier
// =============================================================================

// Class is the semantic tier of a node in a contact map.
type Class int

// Node classes, outermost first.
const (
	ClassSpecies Class = iota
	ClassComponent
	ClassState
)

// NumClasses is the number of node classes.
const NumClasses = 3

// Fill colours the contact map producer uses to encode each class.
const (
	FillSpecies   = "#D2D2D2"
	FillComponent = "#FFFFFF"
	FillState     = "#FFCC00"
)

var classNames = [NumClasses]string{"species", "component", "state"}

var classFills = [NumClasses]string{FillSpecies, FillComponent, FillState}

// String returns the lowercase class name.
func (c Class) String() string {
	if c.Valid() {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Valid reports whether c is one of the three known classes.
func (c Class) Valid() bool { return c >= ClassSpecies && c <= ClassState }

// Fill returns the producer colour for c.
func (c Class) Fill() string {
	if c.Valid() {
		return classFills[c]
	}
	return ""
}

// Classes returns all classes in tier order.
func Classes() []Class { return []Class{ClassSpecies, ClassComponent, ClassState} }

// ParseClass converts a class name ("species", "component", "state").
func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if strings.EqualFold(s, name) {
			return Class(i), nil
		}
	}
	return 0, gerrors.New(gerrors.ErrCodeUnknownColorClass, "unknown class %q", s)
}

// ClassifyFill maps a producer fill colour to its class. Matching ignores
// case. Any colour other than the three producer colours is a data error.
func ClassifyFill(fill string) (Class, error) {
	for i, f := range classFills {
		if strings.EqualFold(fill, f) {
			return Class(i), nil
		}
	}
	return 0, gerrors.New(gerrors.ErrCodeUnknownColorClass,
		"fill %q does not match any known class (%s)", fill, strings.Join(classFills[:], ", "))
}

// =============================================================================
// Style - Rendering Metadata
// =============================================================================

// Style is the rendering record of a node.
type Style struct {
	Label    string // Display label, the identity key within a level
	Fill     string // Fill colour as a hex string
	FontSize int    // Label font size
}

// =============================================================================
// Node
// =============================================================================

// Node is a vertex of a compound graph. A node with a non-nil Graph is a
// group (a species or a component); a node without one is a leaf.
//
// A Node exclusively owns its Style, its Graph and its Data.
type Node struct {
	ID    string
	Style Style
	Class Class
	Graph *Graph // Child graph, nil for leaves

	// Data is the opaque wire payload of the node (for GraphML, the raw
	// <data> elements). The engine never interprets it.
	Data []byte
}

// Label returns the node's display label.
func (n *Node) Label() string { return n.Style.Label }

// IsGroup reports whether the node has a child graph.
func (n *Node) IsGroup() bool { return n.Graph != nil }

// Children returns the nodes of the child graph, or nil for leaves.
func (n *Node) Children() []*Node {
	if n.Graph == nil {
		return nil
	}
	return n.Graph.Nodes
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two nodes by identifier. Edges are treated as undirected
// for deduplication.
type Edge struct {
	ID     string
	Source string
	Target string
	Data   []byte // Opaque wire payload
}

// SameEndpoints reports whether e and o connect the same pair of nodes in
// either direction.
func (e Edge) SameEndpoints(o Edge) bool {
	return (e.Source == o.Source && e.Target == o.Target) ||
		(e.Source == o.Target && e.Target == o.Source)
}

// =============================================================================
// Document
// =============================================================================

// Document is a single root container holding exactly one top-level graph.
// The root is a synthetic [Node] with an empty ID and no style, so that
// "the parent of a top-level node" needs no special casing.
type Document struct {
	Root *Node

	// Header is opaque wire content outside the root graph (for GraphML,
	// the raw <key> declarations).
	Header []byte
}

// New creates an empty document whose root graph has the given wire ID.
func New(graphID string) *Document {
	return &Document{Root: &Node{Graph: NewGraph(graphID)}}
}

// Graph returns the top-level graph.
func (d *Document) Graph() *Graph { return d.Root.Graph }

// Len returns the number of non-root nodes in the document.
func (d *Document) Len() int {
	n := 0
	for range d.Walk() {
		n++
	}
	return n
}

// Node returns the node with the given identifier, or nil.
func (d *Document) Node(id string) *Node {
	for _, n := range d.Walk() {
		if n.ID == id {
			return n
		}
	}
	return nil
}
