package graph

import (
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// Reidentify moves the subtree rooted at n to the identifier newID and
// returns the old-to-new identifier map for every node in the subtree.
//
// Descendants keep their trailing segment under the new prefix, so
// "n2::n5" re-identified as "n7" becomes "n7::n5". A descendant whose
// identifier has no parseable trailing segment gets a fresh one from its
// graph's counter. Nested graph identifiers and the identifiers and
// endpoints of edges inside the subtree are rewritten to match.
//
// Reidentify mutates n; callers should pass a node they own (typically a
// fresh [Node.Clone]). An edge inside the subtree whose endpoint lies
// outside it is a MALFORMED_DOCUMENT error.
func (n *Node) Reidentify(newID string) (map[string]string, error) {
	renames := make(map[string]string)
	type owned struct {
		g     *Graph
		owner string
	}
	var graphs []owned

	type frame struct {
		node *Node
		id   string
	}
	stack := []frame{{n, newID}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		renames[cur.node.ID] = cur.id
		cur.node.ID = cur.id
		g := cur.node.Graph
		if g == nil {
			continue
		}
		g.ID = GraphID(cur.id)
		graphs = append(graphs, owned{g, cur.id})
		for _, c := range g.Nodes {
			var childID string
			if seg, ok := lastSegment(c.ID, nodePrefix); ok {
				childID = ChildID(cur.id, seg)
			} else {
				childID = g.NextNodeID(cur.id)
			}
			stack = append(stack, frame{c, childID})
		}
	}

	for _, o := range graphs {
		for i := range o.g.Edges {
			e := &o.g.Edges[i]
			src, ok := renames[e.Source]
			if !ok {
				return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
					"edge %s references node %s outside its graph", e.ID, e.Source)
			}
			tgt, ok := renames[e.Target]
			if !ok {
				return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
					"edge %s references node %s outside its graph", e.ID, e.Target)
			}
			e.Source, e.Target = src, tgt
			if seq, ok := lastSegment(e.ID, edgePrefix); ok {
				e.ID = EdgeID(o.owner, seq)
			} else {
				e.ID = o.g.NextEdgeID(o.owner)
			}
		}
	}
	return renames, nil
}
