package diff

import (
	"github.com/matzehuels/gdiff/pkg/graph"
)

// DefaultFontDelta is the font size increase applied to every output.
const DefaultFontDelta = 20

// Recolor returns a copy of doc with every non-root node filled with the
// colour of its class in tiers. Provenance plays no part; this produces a
// legible standalone rendering of one input.
func Recolor(doc *graph.Document, tiers Tiers) (*graph.Document, error) {
	out := doc.Clone()
	for e := range out.Entries() {
		if err := paint(e.Node, tiers, e.Path); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ResizeFonts returns a copy of doc with every label font size increased
// by delta.
func ResizeFonts(doc *graph.Document, delta int) *graph.Document {
	out := doc.Clone()
	for _, n := range out.Walk() {
		n.Style.FontSize += delta
	}
	return out
}
