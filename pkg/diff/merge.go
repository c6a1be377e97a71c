package diff

import (
	"maps"
	"slices"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Merge extends a diff result with the nodes and edges of other.
//
// base is typically Diff(source, other, ...). For every node of other:
//
//   - if a node with the same label path already exists in the merged
//     document, the two are identified (Renames[otherID] = existingID);
//   - otherwise a deep copy of the node and its whole subtree is appended to
//     the graph of the node at the parent's label path, painted with
//     palette.OtherOnly and given a fresh identifier from that graph's
//     counter. Descendants are re-identified under the new prefix.
//
// Then every edge of other whose graph has a counterpart in the merged
// document (the top-level graph always does) is remapped through the
// renames. An edge whose endpoint pair already exists at that level, in
// either direction, is skipped; the rest are appended with fresh edge
// identifiers. Edges inside inserted subtrees travel with their subtree.
//
// base is not modified.
func Merge(base *Result, other *graph.Document, palette Palette, opts Options) (*Result, error) {
	palette, err := palette.Normalize()
	if err != nil {
		return nil, err
	}
	res := &Result{
		Document:   base.Document.Clone(),
		Renames:    maps.Clone(base.Renames),
		Warnings:   slices.Clone(base.Warnings),
		Stats:      base.Stats,
		provenance: maps.Clone(base.provenance),
	}
	if res.Renames == nil {
		res.Renames = make(map[string]string)
	}
	if res.provenance == nil {
		res.provenance = make(map[string]Provenance)
	}
	merged := res.Document

	// otherIDs maps identifiers of other only; res.Renames also holds the
	// source identifiers, which share the same namespace.
	otherIDs := make(map[string]string)

	type level struct {
		src   *graph.Graph
		dst   *graph.Graph
		owner string
	}
	levels := []level{{other.Graph(), merged.Graph(), ""}}

	type frame struct {
		path graph.Path
		node *graph.Node
	}
	var stack []frame
	pushChildren := func(n *graph.Node, path graph.Path) {
		kids := n.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{path.Child(kids[i].Label()), kids[i]})
		}
	}
	pushChildren(other.Root, nil)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		existing, w, err := merged.Lookup(cur.path, opts.Ambiguity)
		if err != nil {
			return nil, err
		}
		res.warn(w)

		if existing != nil {
			otherIDs[cur.node.ID] = existing.ID
			res.Renames[cur.node.ID] = existing.ID
			if cur.node.Graph != nil {
				if existing.Graph == nil {
					existing.Graph = graph.NewGraph(graph.GraphID(existing.ID))
				}
				levels = append(levels, level{cur.node.Graph, existing.Graph, existing.ID})
				pushChildren(cur.node, cur.path)
			}
			continue
		}

		parent, w, err := merged.Lookup(cur.path.Parent(), opts.Ambiguity)
		if err != nil {
			return nil, err
		}
		res.warn(w)
		if parent == nil {
			return nil, gerrors.New(gerrors.ErrCodeInternal, "parent of inserted node not in merged document").WithPath(cur.path)
		}
		if err := insert(res, cur.node, parent, cur.path, palette.OtherOnly, otherIDs); err != nil {
			return nil, err
		}
	}

	for _, lv := range levels {
		for _, e := range lv.src.Edges {
			src, ok := otherIDs[e.Source]
			if !ok {
				return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
					"edge %s references unknown node %s", e.ID, e.Source)
			}
			tgt, ok := otherIDs[e.Target]
			if !ok {
				return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
					"edge %s references unknown node %s", e.ID, e.Target)
			}
			if lv.dst.HasEdge(src, tgt) {
				res.Stats.EdgesDeduplicated++
				continue
			}
			lv.dst.AddEdge(graph.Edge{
				ID:     lv.dst.NextEdgeID(lv.owner),
				Source: src,
				Target: tgt,
				Data:   slices.Clone(e.Data),
			})
			res.Stats.EdgesAdded++
		}
	}
	return res, nil
}

// insert copies n with its subtree under parent, paints it and records the
// identifier changes.
func insert(res *Result, n, parent *graph.Node, path graph.Path, tiers Tiers, otherIDs map[string]string) error {
	cp := n.Clone()
	if parent.Graph == nil {
		parent.Graph = graph.NewGraph(graph.GraphID(parent.ID))
	}
	renames, err := cp.Reidentify(parent.Graph.NextNodeID(parent.ID))
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeMalformedDocument, err, "insert subtree").WithPath(path)
	}
	for old, nu := range renames {
		otherIDs[old] = nu
		res.Renames[old] = nu
	}

	// Paint the subtree, root included, and record provenance by path.
	type frame struct {
		path graph.Path
		node *graph.Node
	}
	stack := []frame{{path, cp}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := paint(cur.node, tiers, cur.path); err != nil {
			return err
		}
		res.mark(cur.path, OtherOnly)
		for _, c := range cur.node.Children() {
			stack = append(stack, frame{cur.path.Child(c.Label()), c})
		}
	}

	parent.Graph.AddNode(cp)
	return nil
}

// Union runs [Diff] of source against other and merges other into the
// result.
func Union(source, other *graph.Document, palette Palette, opts Options) (*Result, error) {
	base, err := Diff(source, other, palette, opts)
	if err != nil {
		return nil, err
	}
	return Merge(base, other, palette, opts)
}
