// Package graph provides the in-memory document model for compound graphs.
//
// A contact map is a graph of graphs: a molecule (species) groups its
// components, and a component groups its states. This package models that
// tree together with the rendering metadata the diff engine reads and
// writes, independent of any wire format.
//
// # Architecture
//
// The package sits between the wire format and the diff engine:
//
//   - pkg/io: GraphML reader/writer producing [Document] values
//   - [Document], [Graph], [Node], [Edge]: Document model (this package)
//   - pkg/diff: Differ, Merger and cosmetic passes over [Document]
//
// # Core Types
//
//   - [Document]: A synthetic root [Node] holding the top-level [Graph]
//   - [Graph]: Ordered nodes and edges of one nesting level
//   - [Node]: Identifier, [Style], [Class] and an optional child [Graph]
//   - [Edge]: Identifier plus source and target node identifiers
//   - [Path]: Ancestor labels from the root, the cross-document identity key
//
// # Identifiers
//
// Node identifiers are hierarchical: "n0::n3::n1" is the second child (by
// allocation order) of "n0::n3". A [Graph] keeps monotonic counters for the
// next child segment and the next edge number, seeded from the identifiers it
// was built with, so allocation never depends on sibling order:
//
//	g := graph.NewGraph("n0:")
//	g.AddNode(&graph.Node{ID: "n0::n7"})
//	g.AddNode(&graph.Node{ID: "n0::n2"})
//	g.NextNodeID("n0") // "n0::n8"
//
// # Classes
//
// [Class] is an explicit node tier (species, component, state). The producer
// encodes it as a fill colour; [ClassifyFill] decodes it once at read time,
// after which colour is purely presentational.
//
// # Label Paths
//
// Two nodes in different documents are the same entity iff their label paths
// are identical. [Find] resolves a path level by level and reports sibling
// label collisions as an explicit [Ambiguous] outcome rather than silently
// picking the first match; [Document.Lookup] applies an [AmbiguityPolicy].
//
// # Traversal
//
// All traversals use an explicit work stack, never native recursion, so
// nesting depth is bounded by memory rather than by the call stack.
// [Document.Walk] yields (path, node) pairs in pre-order.
//
// # Concurrency
//
// Documents are plain values with no internal locking. Concurrent reads are
// safe; any mutation requires exclusive access. [Document.Clone] produces a
// fully independent copy.
package graph
