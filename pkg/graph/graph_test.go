package graph

import (
	"slices"
	"strings"
	"testing"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// egfr builds a small two-molecule contact map:
//
//	EGFR(n0) -> [L(n0::n0), Y1068(n0::n1) -> [0(n0::n1::n0), P(n0::n1::n1)]]
//	Grb2(n1) -> [SH2(n1::n0)]
func egfr() *Document {
	return Build(
		[]*Node{
			Group("n0", "EGFR", ClassSpecies,
				Leaf("n0::n0", "L", ClassComponent),
				Group("n0::n1", "Y1068", ClassComponent,
					Leaf("n0::n1::n0", "0", ClassState),
					Leaf("n0::n1::n1", "P", ClassState),
				),
			),
			Group("n1", "Grb2", ClassSpecies,
				Leaf("n1::n0", "SH2", ClassComponent),
			),
		},
		Edge{ID: "e0", Source: "n0::n1", Target: "n1::n0"},
	)
}

func TestClassifyFill(t *testing.T) {
	tests := []struct {
		fill    string
		want    Class
		wantErr bool
	}{
		{"#D2D2D2", ClassSpecies, false},
		{"#d2d2d2", ClassSpecies, false},
		{"#FFFFFF", ClassComponent, false},
		{"#FFCC00", ClassState, false},
		{"#dadbfd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.fill, func(t *testing.T) {
			got, err := ClassifyFill(tt.fill)
			if tt.wantErr {
				if !gerrors.Is(err, gerrors.ErrCodeUnknownColorClass) {
					t.Fatalf("ClassifyFill(%q) error = %v, want UNKNOWN_COLOR_CLASS", tt.fill, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClassifyFill(%q) error = %v", tt.fill, err)
			}
			if got != tt.want {
				t.Errorf("ClassifyFill(%q) = %v, want %v", tt.fill, got, tt.want)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	for _, c := range Classes() {
		got, err := ParseClass(c.String())
		if err != nil || got != c {
			t.Errorf("ParseClass(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseClass("molecule"); err == nil {
		t.Error("ParseClass(molecule) should fail")
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("n0::n12::n3")
	if err != nil {
		t.Fatalf("ParseID error = %v", err)
	}
	if !slices.Equal(id, ID{0, 12, 3}) {
		t.Errorf("ParseID = %v", id)
	}
	if id.String() != "n0::n12::n3" {
		t.Errorf("String() = %q", id.String())
	}
	if id.Parent().String() != "n0::n12" {
		t.Errorf("Parent() = %q", id.Parent().String())
	}
	if id.Last() != 3 {
		t.Errorf("Last() = %d", id.Last())
	}
	if got := id.Parent().Child(7).String(); got != "n0::n12::n7" {
		t.Errorf("Child() = %q", got)
	}
	if id.String() != "n0::n12::n3" {
		t.Error("Child must not alias the parent's backing array")
	}

	for _, bad := range []string{"", "x0", "n", "n0::", "n0::e1", "n-1"} {
		if _, err := ParseID(bad); !gerrors.Is(err, gerrors.ErrCodeMalformedDocument) {
			t.Errorf("ParseID(%q) error = %v, want MALFORMED_DOCUMENT", bad, err)
		}
	}
}

func TestNextNodeIDIgnoresSiblingOrder(t *testing.T) {
	g := NewGraph("n0:")
	g.AddNode(Leaf("n0::n7", "a", ClassComponent))
	g.AddNode(Leaf("n0::n2", "b", ClassComponent))

	if got := g.NextNodeID("n0"); got != "n0::n8" {
		t.Errorf("NextNodeID = %q, want n0::n8", got)
	}
	if got := g.NextNodeID("n0"); got != "n0::n9" {
		t.Errorf("second NextNodeID = %q, want n0::n9", got)
	}

	top := NewGraph("G")
	if got := top.NextNodeID(""); got != "n0" {
		t.Errorf("NextNodeID on empty top level = %q, want n0", got)
	}
}

func TestNextNodeIDUnparseableSiblings(t *testing.T) {
	g := NewGraph("")
	g.AddNode(&Node{ID: "alpha"})
	g.AddNode(&Node{ID: "beta"})
	if got := g.NextNodeID(""); got != "n2" {
		t.Errorf("NextNodeID = %q, want n2", got)
	}
}

func TestNextEdgeID(t *testing.T) {
	g := NewGraph("G")
	g.AddEdge(Edge{ID: "e4", Source: "n0", Target: "n1"})
	g.AddEdge(Edge{ID: "e1", Source: "n1", Target: "n2"})
	if got := g.NextEdgeID(""); got != "e5" {
		t.Errorf("NextEdgeID = %q, want e5", got)
	}

	nested := NewGraph("n0:")
	nested.AddEdge(Edge{ID: "n0::e0"})
	if got := nested.NextEdgeID("n0"); got != "n0::e1" {
		t.Errorf("nested NextEdgeID = %q, want n0::e1", got)
	}

	unnamed := NewGraph("G")
	unnamed.AddEdge(Edge{ID: "first"})
	unnamed.AddEdge(Edge{ID: "second"})
	if got := unnamed.NextEdgeID(""); got != "e2" {
		t.Errorf("NextEdgeID after unnamed edges = %q, want e2", got)
	}
}

func TestHasEdge(t *testing.T) {
	g := egfr().Graph()
	if !g.HasEdge("n0::n1", "n1::n0") {
		t.Error("HasEdge should match the stored direction")
	}
	if !g.HasEdge("n1::n0", "n0::n1") {
		t.Error("HasEdge should match the reverse direction")
	}
	if g.HasEdge("n0", "n1") {
		t.Error("HasEdge matched an absent edge")
	}
}

func TestScope(t *testing.T) {
	scope := egfr().Graph().Scope()
	for _, id := range []string{"n0", "n0::n0", "n0::n1", "n0::n1::n0", "n0::n1::n1", "n1", "n1::n0"} {
		if _, ok := scope[id]; !ok {
			t.Errorf("Scope missing %s", id)
		}
	}
	if len(scope) != 7 {
		t.Errorf("len(Scope) = %d, want 7", len(scope))
	}
}

func TestWalkPreOrder(t *testing.T) {
	var got []string
	for path, n := range egfr().Walk() {
		got = append(got, path.String()+"="+n.ID)
	}
	want := []string{
		"EGFR=n0",
		"EGFR/L=n0::n0",
		"EGFR/Y1068=n0::n1",
		"EGFR/Y1068/0=n0::n1::n0",
		"EGFR/Y1068/P=n0::n1::n1",
		"Grb2=n1",
		"Grb2/SH2=n1::n0",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Walk order =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestWalkEarlyStop(t *testing.T) {
	count := 0
	for range egfr().Walk() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestEntriesParent(t *testing.T) {
	d := egfr()
	for e := range d.Entries() {
		if len(e.Path) == 1 && e.Parent != d.Root {
			t.Errorf("%s: top-level parent should be the root", e.Path)
		}
		if e.Node.ID == "n0::n1::n1" && e.Parent.ID != "n0::n1" {
			t.Errorf("parent of P = %s, want n0::n1", e.Parent.ID)
		}
	}
}

func TestWalkDeepNesting(t *testing.T) {
	// Nesting far beyond what a recursive walk would comfortably handle.
	const depth = 3000
	d := New("G")
	parent := d.Root
	parentID := ""
	for i := 0; i < depth; i++ {
		id := ChildID(parentID, 0)
		n := Leaf(id, "x", ClassComponent)
		if parent.Graph == nil {
			parent.Graph = NewGraph(GraphID(parentID))
		}
		parent.Graph.AddNode(n)
		parent, parentID = n, id
	}
	if got := d.Len(); got != depth {
		t.Errorf("Len() = %d, want %d", got, depth)
	}
	if got := d.Clone().Len(); got != depth {
		t.Errorf("Clone().Len() = %d, want %d", got, depth)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := egfr()
	d.Root.Graph.Nodes[0].Data = []byte("<data/>")
	c := d.Clone()

	c.Graph().Nodes[0].Style.Fill = "#000000"
	c.Graph().Nodes[0].Graph.Nodes[1].Graph.Nodes[0].Style.Label = "changed"
	c.Graph().Edges[0].Source = "n1"
	c.Graph().Nodes[0].Data[1] = 'X'
	c.Graph().AddNode(Leaf("n9", "extra", ClassSpecies))

	if d.Graph().Nodes[0].Style.Fill != FillSpecies {
		t.Error("Clone shares styles")
	}
	if d.Graph().Nodes[0].Graph.Nodes[1].Graph.Nodes[0].Style.Label != "0" {
		t.Error("Clone shares nested nodes")
	}
	if d.Graph().Edges[0].Source != "n0::n1" {
		t.Error("Clone shares edges")
	}
	if string(d.Graph().Nodes[0].Data) != "<data/>" {
		t.Error("Clone shares payload bytes")
	}
	if len(d.Graph().Nodes) != 2 {
		t.Error("Clone shares node slices")
	}

	// Counters survive cloning.
	if got := c.Graph().Nodes[0].Graph.NextNodeID("n0"); got != "n0::n2" {
		t.Errorf("cloned NextNodeID = %q, want n0::n2", got)
	}
}

func TestDocumentNode(t *testing.T) {
	d := egfr()
	if n := d.Node("n0::n1::n1"); n == nil || n.Label() != "P" {
		t.Errorf("Node(n0::n1::n1) = %v", n)
	}
	if d.Node("n7") != nil {
		t.Error("Node(n7) should be nil")
	}
}

func TestReidentify(t *testing.T) {
	src := egfr().Graph().Nodes[0].Clone()
	src.Graph.AddEdge(Edge{ID: "n0::e0", Source: "n0::n0", Target: "n0::n1::n1"})

	renames, err := src.Reidentify("n4")
	if err != nil {
		t.Fatalf("Reidentify error = %v", err)
	}
	want := map[string]string{
		"n0":         "n4",
		"n0::n0":     "n4::n0",
		"n0::n1":     "n4::n1",
		"n0::n1::n0": "n4::n1::n0",
		"n0::n1::n1": "n4::n1::n1",
	}
	if len(renames) != len(want) {
		t.Errorf("len(renames) = %d, want %d", len(renames), len(want))
	}
	for old, nu := range want {
		if renames[old] != nu {
			t.Errorf("renames[%s] = %q, want %q", old, renames[old], nu)
		}
	}
	if src.Graph.ID != "n4:" || src.Graph.Nodes[1].Graph.ID != "n4::n1:" {
		t.Errorf("graph ids = %q, %q", src.Graph.ID, src.Graph.Nodes[1].Graph.ID)
	}
	e := src.Graph.Edges[0]
	if e.ID != "n4::e0" || e.Source != "n4::n0" || e.Target != "n4::n1::n1" {
		t.Errorf("edge = %+v", e)
	}
	if got := src.Graph.NextNodeID(src.ID); got != "n4::n2" {
		t.Errorf("NextNodeID after Reidentify = %q, want n4::n2", got)
	}
}

func TestReidentifyDanglingEdge(t *testing.T) {
	n := Group("n0", "A", ClassSpecies, Leaf("n0::n0", "b", ClassComponent))
	n.Graph.AddEdge(Edge{ID: "n0::e0", Source: "n0::n0", Target: "n9"})
	if _, err := n.Reidentify("n1"); !gerrors.Is(err, gerrors.ErrCodeMalformedDocument) {
		t.Errorf("Reidentify error = %v, want MALFORMED_DOCUMENT", err)
	}
}
