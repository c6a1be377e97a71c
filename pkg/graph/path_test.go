package graph

import (
	"testing"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

func TestFind(t *testing.T) {
	d := egfr()
	tests := []struct {
		name    string
		path    Path
		outcome Outcome
		wantID  string
	}{
		{"root", nil, Found, ""},
		{"top level", Path{"EGFR"}, Found, "n0"},
		{"nested", Path{"EGFR", "Y1068", "P"}, Found, "n0::n1::n1"},
		{"missing top", Path{"Shc"}, Absent, ""},
		{"missing nested", Path{"EGFR", "Y1173"}, Absent, ""},
		{"past a leaf", Path{"EGFR", "L", "x"}, Absent, ""},
		{"case sensitive", Path{"egfr"}, Absent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Find(d, tt.path)
			if res.Outcome != tt.outcome {
				t.Fatalf("Outcome = %v, want %v", res.Outcome, tt.outcome)
			}
			if tt.outcome == Found && res.Node.ID != tt.wantID {
				t.Errorf("Node.ID = %q, want %q", res.Node.ID, tt.wantID)
			}
			if tt.outcome == Absent && res.Node != nil {
				t.Errorf("Node = %v, want nil", res.Node)
			}
		})
	}

	if Find(d, nil).Node != d.Root {
		t.Error("empty path should resolve to the root")
	}
}

func ambiguous() *Document {
	return Build([]*Node{
		Group("n0", "A", ClassSpecies, Leaf("n0::n0", "x", ClassComponent)),
		Group("n1", "A", ClassSpecies, Leaf("n1::n0", "y", ClassComponent)),
	})
}

func TestFindAmbiguous(t *testing.T) {
	d := ambiguous()

	res := Find(d, Path{"A", "x"})
	if res.Outcome != Ambiguous {
		t.Fatalf("Outcome = %v, want ambiguous", res.Outcome)
	}
	if res.Node == nil || res.Node.ID != "n0::n0" {
		t.Errorf("Node = %v, want first-match n0::n0", res.Node)
	}
	if !res.At.Equal(Path{"A"}) || res.Matches != 2 {
		t.Errorf("At = %v, Matches = %d", res.At, res.Matches)
	}

	// Second group is unreachable by first match.
	res = Find(d, Path{"A", "y"})
	if res.Outcome != Ambiguous || res.Node != nil {
		t.Errorf("Find(A/y) = %v %v, want ambiguous with nil node", res.Outcome, res.Node)
	}
}

func TestLookupPolicy(t *testing.T) {
	d := ambiguous()

	_, _, err := d.Lookup(Path{"A", "x"}, AmbiguityError)
	if !gerrors.Is(err, gerrors.ErrCodeAmbiguousLabel) {
		t.Fatalf("Lookup error = %v, want AMBIGUOUS_LABEL", err)
	}
	if got := gerrors.FormatPath(gerrors.GetPath(err)); got != "A" {
		t.Errorf("error path = %q, want A", got)
	}

	n, w, err := d.Lookup(Path{"A", "x"}, AmbiguityFirst)
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	if n == nil || n.ID != "n0::n0" {
		t.Errorf("Lookup node = %v", n)
	}
	if w == nil || w.Matches != 2 {
		t.Errorf("Lookup warning = %v", w)
	}

	n, w, err = egfr().Lookup(Path{"Shc"}, AmbiguityError)
	if n != nil || w != nil || err != nil {
		t.Errorf("Lookup(absent) = %v, %v, %v", n, w, err)
	}
}

func TestParseAmbiguityPolicy(t *testing.T) {
	for in, want := range map[string]AmbiguityPolicy{"": AmbiguityError, "error": AmbiguityError, "first": AmbiguityFirst} {
		got, err := ParseAmbiguityPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseAmbiguityPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseAmbiguityPolicy("last"); !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Errorf("ParseAmbiguityPolicy(last) error = %v", err)
	}
}

func TestPathHelpers(t *testing.T) {
	p := Path{"A", "b"}
	c := p.Child("c")
	if !c.Parent().Equal(p) {
		t.Errorf("Parent() = %v", c.Parent())
	}
	q := c.Parent().Child("d")
	if c[2] != "c" {
		t.Error("Child after Parent must not overwrite the original path")
	}
	if q.String() != "A/b/d" {
		t.Errorf("String() = %q", q.String())
	}
	if (Path{"a/b"}).Key() == (Path{"a", "b"}).Key() {
		t.Error("Key must distinguish separators inside labels")
	}
}
