// Package pkg provides the core libraries of gdiff, a diff and merge engine
// for hierarchical contact maps.
//
// # Overview
//
// A contact map is a compound graph drawn in yEd: species contain
// components, components contain states, and edges connect nodes at any
// level. gdiff matches the nodes of two maps by label path, paints them by
// provenance and can merge the two maps into one.
//
// # Architecture
//
// The typical data flow:
//
//	GraphML file (a)     GraphML file (b)
//	        ↓                   ↓
//	   [io] package (read, classify fills, validate)
//	        ↓
//	   [diff] package (Diff, Merge, Union, Recolor, ResizeFonts)
//	        ↓
//	   [io] package (patch styles, write atomically)
//	        ↓
//	   painted GraphML outputs
//
// [pipeline] ties these together, names the outputs and emits
// [observability] hooks.
//
// # Quick Start
//
//	a, _ := io.ImportGraphML("egfr.graphml")
//	b, _ := io.ImportGraphML("shc.graphml")
//
//	res, err := diff.Union(a, b, diff.DefaultPalette(), diff.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, w := range res.Warnings {
//	    log.Warn("ambiguous label", "path", w.Path)
//	}
//	_ = io.ExportGraphML(res.Document, "egfr_shc_union.graphml")
//
// # Main Packages
//
// [graph] - Document model: nested graphs, node classes, label paths, the
// pre-order walker and the path resolver with its ambiguity policy.
//
// [diff] - The engine. All transformations copy their input.
//
// [io] - yEd GraphML reader and writer. Everything the engine does not
// touch is carried through verbatim.
//
// [config] - TOML or YAML settings: mode, font delta, ambiguity policy and
// palette.
//
// [pipeline] - Load, run, write and report; shared by every CLI command.
//
// [errors] - Coded errors that carry the offending label path.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/diff/...       # Engine only
//	go test -run Example ./...   # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/graph
// [diff]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/diff
// [io]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gdiff/pkg/errors
package pkg
