package diff

import (
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Options configures label path resolution.
type Options struct {
	// Ambiguity decides what happens when siblings share a label. The zero
	// value fails the operation.
	Ambiguity graph.AmbiguityPolicy
}

// Stats counts the outcome of a diff or merge.
type Stats struct {
	SourceOnly        int `json:"source_only"`
	OtherOnly         int `json:"other_only"`
	Intersect         int `json:"intersect"`
	EdgesAdded        int `json:"edges_added"`
	EdgesDeduplicated int `json:"edges_deduplicated"`
}

// Result is the output of [Diff], [Merge] and [Union].
type Result struct {
	// Document is the painted (and, after a merge, extended) document.
	Document *graph.Document

	// Renames maps node identifiers of the inputs to identifiers in
	// Document. For a diff it is the identity over the source.
	Renames map[string]string

	// Warnings lists ambiguities tolerated under graph.AmbiguityFirst.
	Warnings []graph.Warning

	Stats Stats

	provenance map[string]Provenance
}

func newResult(doc *graph.Document) *Result {
	return &Result{
		Document:   doc,
		Renames:    make(map[string]string),
		provenance: make(map[string]Provenance),
	}
}

// Provenance returns the provenance assigned to the node at path.
func (r *Result) Provenance(path graph.Path) (Provenance, bool) {
	p, ok := r.provenance[path.Key()]
	return p, ok
}

func (r *Result) mark(path graph.Path, prov Provenance) {
	r.provenance[path.Key()] = prov
	switch prov {
	case SourceOnly:
		r.Stats.SourceOnly++
	case OtherOnly:
		r.Stats.OtherOnly++
	case Intersect:
		r.Stats.Intersect++
	}
}

func (r *Result) warn(w *graph.Warning) {
	if w != nil {
		r.Warnings = append(r.Warnings, *w)
	}
}

// Diff paints a copy of source by comparing it against other.
//
// Every non-root node of the copy is filled with palette.Intersect for its
// class when a node with the same label path exists in other, and with
// palette.SourceOnly otherwise. The copy keeps the full structure of source;
// no node is added or removed. Renames maps each source identifier to the
// identifier of its copy.
//
// Run Diff(b, a, palette.Mirror(), opts) for the reverse direction.
func Diff(source, other *graph.Document, palette Palette, opts Options) (*Result, error) {
	palette, err := palette.Normalize()
	if err != nil {
		return nil, err
	}
	painted := source.Clone()
	res := newResult(painted)

	// Both stacks advance together, so src and dst always sit at the same
	// label path.
	type frame struct {
		path     graph.Path
		src, dst *graph.Node
	}
	stack := []frame{{src: source.Root, dst: painted.Root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(cur.path) > 0 {
			res.Renames[cur.src.ID] = cur.dst.ID

			match, w, err := other.Lookup(cur.path, opts.Ambiguity)
			if err != nil {
				return nil, err
			}
			res.warn(w)

			prov := SourceOnly
			if match != nil && match.Label() == cur.src.Label() {
				prov = Intersect
			}
			if err := paint(cur.dst, palette.Tiers(prov), cur.path); err != nil {
				return nil, err
			}
			res.mark(cur.path, prov)
		}

		srcKids, dstKids := cur.src.Children(), cur.dst.Children()
		if len(srcKids) != len(dstKids) {
			return nil, gerrors.New(gerrors.ErrCodeInternal,
				"copy diverged from source (%d vs %d children)", len(dstKids), len(srcKids)).WithPath(cur.path)
		}
		for i := len(srcKids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				path: cur.path.Child(srcKids[i].Label()),
				src:  srcKids[i],
				dst:  dstKids[i],
			})
		}
	}
	return res, nil
}

// paint fills n with the tier colour for its class.
func paint(n *graph.Node, tiers Tiers, path graph.Path) error {
	if !n.Class.Valid() {
		return gerrors.New(gerrors.ErrCodeUnknownColorClass, "node %s has no known class", n.ID).WithPath(path)
	}
	n.Style.Fill = tiers[n.Class]
	return nil
}
