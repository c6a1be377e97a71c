package diff

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Provenance tags a node by the input documents it belongs to.
type Provenance int

// Provenance values.
const (
	SourceOnly Provenance = iota
	OtherOnly
	Intersect
)

// String returns the configuration name of the provenance.
func (p Provenance) String() string {
	switch p {
	case SourceOnly:
		return "source-only"
	case OtherOnly:
		return "other-only"
	case Intersect:
		return "intersect"
	}
	return fmt.Sprintf("provenance(%d)", int(p))
}

// Tiers holds one fill colour per node class, indexed by [graph.Class].
type Tiers [graph.NumClasses]string

// For returns the colour of class c.
func (t Tiers) For(c graph.Class) (string, error) {
	if !c.Valid() {
		return "", gerrors.New(gerrors.ErrCodeUnknownColorClass, "no colour for %v", c)
	}
	return t[c], nil
}

// Palette assigns a [Tiers] entry to each provenance.
type Palette struct {
	SourceOnly Tiers
	OtherOnly  Tiers
	Intersect  Tiers
}

// Default palette colours.
var (
	DefaultSourceOnly = Tiers{"#dadbfd", "#e6e7fe", "#f3f3ff"}
	DefaultOtherOnly  = Tiers{"#ff9e81", "#ffbfaa", "#ffdfd4"}
	DefaultIntersect  = Tiers{"#c4ed9e", "#d9f4be", "#ecf9df"}
)

// DefaultPalette returns blue for source-only, red for other-only and green
// for shared nodes, each fading from species to state.
func DefaultPalette() Palette {
	return Palette{
		SourceOnly: DefaultSourceOnly,
		OtherOnly:  DefaultOtherOnly,
		Intersect:  DefaultIntersect,
	}
}

// Tiers returns the entry for provenance p.
func (p Palette) Tiers(prov Provenance) Tiers {
	switch prov {
	case SourceOnly:
		return p.SourceOnly
	case OtherOnly:
		return p.OtherOnly
	default:
		return p.Intersect
	}
}

// Color returns the fill for a node of class c with provenance prov.
func (p Palette) Color(prov Provenance, c graph.Class) (string, error) {
	return p.Tiers(prov).For(c)
}

// Mirror returns the palette for the reverse direction: the source-only
// and other-only entries swap, the shared entry stays.
func (p Palette) Mirror() Palette {
	return Palette{
		SourceOnly: p.OtherOnly,
		OtherOnly:  p.SourceOnly,
		Intersect:  p.Intersect,
	}
}

// Normalize validates every colour and returns the palette with colours in
// lowercase "#rrggbb" form. All invalid colours are reported together.
func (p Palette) Normalize() (Palette, error) {
	var out Palette
	var bad []string
	for _, prov := range []Provenance{SourceOnly, OtherOnly, Intersect} {
		in := p.Tiers(prov)
		var norm Tiers
		for _, c := range graph.Classes() {
			col, err := colorful.Hex(in[c])
			if err != nil {
				bad = append(bad, fmt.Sprintf("%s.%s=%q", prov, c, in[c]))
				continue
			}
			norm[c] = col.Hex()
		}
		switch prov {
		case SourceOnly:
			out.SourceOnly = norm
		case OtherOnly:
			out.OtherOnly = norm
		case Intersect:
			out.Intersect = norm
		}
	}
	if len(bad) > 0 {
		return Palette{}, gerrors.New(gerrors.ErrCodeInvalidPalette, "invalid colours: %v", bad)
	}
	return out, nil
}
