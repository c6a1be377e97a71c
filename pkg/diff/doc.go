// Package diff compares and merges contact map documents.
//
// Two documents are compared by label path: a node in one document
// corresponds to a node in the other iff the labels of all their ancestors,
// and their own labels, match. Every transformation in this package returns
// a new [graph.Document]; inputs are never modified.
//
// # Operations
//
//   - [Diff]: paints a copy of the source by provenance (source-only or
//     shared) and returns it with an identifier rename map
//   - [Merge]: inserts the nodes only present in the other document into a
//     diff result and merges the other document's edges without duplicates
//   - [Union]: [Diff] followed by [Merge]
//   - [Recolor], [ResizeFonts]: whole-document cosmetic passes
//   - [Run]: the matrix or union run over two inputs
//
// # Palette
//
// A [Palette] holds one [Tiers] entry (a colour per [graph.Class]) for each
// [Provenance]:
//
//	p := diff.DefaultPalette()
//	res, err := diff.Diff(a, b, p, diff.Options{})
//	rev, err := diff.Diff(b, a, p.Mirror(), diff.Options{})
//
// # Errors
//
// Errors carry the label path of the offending node (see pkg/errors). Any
// error aborts the whole operation; no partial document is returned.
//
// # Traversal
//
// Like pkg/graph, every walk here uses an explicit stack. [Diff] walks the
// source and its copy in lockstep so that each paint lands on the node at
// the same label path.
package diff
