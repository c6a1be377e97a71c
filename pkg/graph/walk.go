package graph

import (
	"iter"
	"slices"
	"strings"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// Path is the sequence of ancestor labels from the document root down to a
// node, inclusive. The empty path denotes the root.
type Path []string

// Child returns a new path extending p with label. p is never aliased.
func (p Path) Child(label string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = label
	return out
}

// Parent returns the path of the enclosing node.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Equal reports whether p and o name the same label path.
func (p Path) Equal(o Path) bool { return slices.Equal(p, o) }

// Key returns a string usable as a map key. Labels may contain any
// printable character, so segments are joined with NUL.
func (p Path) Key() string { return strings.Join(p, "\x00") }

// String renders the path for humans.
func (p Path) String() string { return gerrors.FormatPath(p) }

// Entry is one node visited by [Document.Entries].
type Entry struct {
	Path   Path
	Node   *Node
	Parent *Node // Enclosing node, the document root for top-level nodes
}

// Walk returns a pre-order iterator over every non-root node and its label
// path. Siblings are visited in document order. The traversal uses an
// explicit stack; a fresh stack is built on every call.
//
// The yielded path is owned by the caller.
func (d *Document) Walk() iter.Seq2[Path, *Node] {
	return func(yield func(Path, *Node) bool) {
		for e := range d.Entries() {
			if !yield(e.Path, e.Node) {
				return
			}
		}
	}
}

// Entries is like [Document.Walk] but also yields the enclosing node.
func (d *Document) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if d == nil || d.Root == nil {
			return
		}
		stack := pushChildren(nil, d.Root, nil)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			stack = pushChildren(stack, cur.Node, cur.Path)
		}
	}
}

// pushChildren pushes the children of n in reverse so that popping visits
// them in document order.
func pushChildren(stack []Entry, n *Node, path Path) []Entry {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		stack = append(stack, Entry{Path: path.Child(c.Style.Label), Node: c, Parent: n})
	}
	return stack
}
