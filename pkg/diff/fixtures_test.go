package diff

import (
	"github.com/matzehuels/gdiff/pkg/graph"
)

// mapA:
//
//	EGFR(n0) [L(n0::n0), Y1068(n0::n1) [0, P]]
//	Grb2(n1) [SH2(n1::n0)]
//	edges: Y1068-SH2, L-Y1068
func mapA() *graph.Document {
	return graph.Build(
		[]*graph.Node{
			graph.Group("n0", "EGFR", graph.ClassSpecies,
				graph.Leaf("n0::n0", "L", graph.ClassComponent),
				graph.Group("n0::n1", "Y1068", graph.ClassComponent,
					graph.Leaf("n0::n1::n0", "0", graph.ClassState),
					graph.Leaf("n0::n1::n1", "P", graph.ClassState),
				),
			),
			graph.Group("n1", "Grb2", graph.ClassSpecies,
				graph.Leaf("n1::n0", "SH2", graph.ClassComponent),
			),
		},
		graph.Edge{ID: "e0", Source: "n0::n1", Target: "n1::n0"},
		graph.Edge{ID: "e1", Source: "n0::n0", Target: "n0::n1"},
	)
}

// mapB numbers its nodes independently of mapA:
//
//	Shc(n0)  [PTB(n0::n0)]
//	EGFR(n1) [Y1068(n1::n0) [0, P], L(n1::n1), Y1173(n1::n2) [0, P]]
//	edges: Y1173-PTB, L-Y1068 (reverse of mapA's e1)
func mapB() *graph.Document {
	return graph.Build(
		[]*graph.Node{
			graph.Group("n0", "Shc", graph.ClassSpecies,
				graph.Leaf("n0::n0", "PTB", graph.ClassComponent),
			),
			graph.Group("n1", "EGFR", graph.ClassSpecies,
				graph.Group("n1::n0", "Y1068", graph.ClassComponent,
					graph.Leaf("n1::n0::n0", "0", graph.ClassState),
					graph.Leaf("n1::n0::n1", "P", graph.ClassState),
				),
				graph.Leaf("n1::n1", "L", graph.ClassComponent),
				graph.Group("n1::n2", "Y1173", graph.ClassComponent,
					graph.Leaf("n1::n2::n0", "0", graph.ClassState),
					graph.Leaf("n1::n2::n1", "P", graph.ClassState),
				),
			),
		},
		graph.Edge{ID: "e0", Source: "n1::n2", Target: "n0::n0"},
		graph.Edge{ID: "e1", Source: "n1::n1", Target: "n1::n0"},
	)
}

func single(label string) *graph.Document {
	return graph.Build([]*graph.Node{graph.Leaf("n0", label, graph.ClassSpecies)})
}

// at returns the node at the given label path, or nil.
func at(d *graph.Document, labels ...string) *graph.Node {
	res := graph.Find(d, graph.Path(labels))
	if res.Outcome != graph.Found {
		return nil
	}
	return res.Node
}

// fills snapshots every node's fill by label path.
func fills(d *graph.Document) map[string]string {
	out := make(map[string]string)
	for p, n := range d.Walk() {
		out[p.String()] = n.Style.Fill
	}
	return out
}
