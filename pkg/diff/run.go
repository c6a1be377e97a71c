package diff

import (
	"fmt"
	"strings"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Mode selects which outputs [Run] produces.
type Mode string

// Run modes.
const (
	// ModeMatrix produces both diff directions and a recoloured reference
	// copy of each input.
	ModeMatrix Mode = "matrix"
	// ModeUnion produces a single merged document.
	ModeUnion Mode = "union"
)

// Modes lists the valid modes.
var Modes = []Mode{ModeMatrix, ModeUnion}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", gerrors.New(gerrors.ErrCodeInvalidMode,
		"mode %q is not valid, choose from %s", s, strings.Join(names, ", "))
}

// RunConfig configures [Run].
type RunConfig struct {
	Mode      Mode
	Palette   Palette
	FontDelta int
	Options   Options
}

// DefaultRunConfig returns a matrix run with the default palette.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Mode:      ModeMatrix,
		Palette:   DefaultPalette(),
		FontDelta: DefaultFontDelta,
	}
}

// Outputs holds the documents produced by [Run]. Fields not produced by the
// selected mode are nil.
type Outputs struct {
	Mode Mode

	// Matrix mode.
	Forward    *Result         // a - b
	Reverse    *Result         // b - a
	RecoloredA *graph.Document // a in palette.SourceOnly
	RecoloredB *graph.Document // b in palette.OtherOnly

	// Union mode.
	Union *Result
}

// Warnings returns the warnings of every result, in output order.
func (o *Outputs) Warnings() []graph.Warning {
	var out []graph.Warning
	for _, r := range []*Result{o.Forward, o.Reverse, o.Union} {
		if r != nil {
			out = append(out, r.Warnings...)
		}
	}
	return out
}

// Run compares a and b according to cfg. The font delta is applied once
// to every output. Any error aborts the run and no outputs are returned.
func Run(a, b *graph.Document, cfg RunConfig) (*Outputs, error) {
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette.Normalize()
	if err != nil {
		return nil, err
	}
	out := &Outputs{Mode: cfg.Mode}

	switch cfg.Mode {
	case ModeMatrix:
		fwd, err := Diff(a, b, palette, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("diff a-b: %w", err)
		}
		rev, err := Diff(b, a, palette.Mirror(), cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("diff b-a: %w", err)
		}
		recA, err := Recolor(a, palette.SourceOnly)
		if err != nil {
			return nil, fmt.Errorf("recolor a: %w", err)
		}
		recB, err := Recolor(b, palette.OtherOnly)
		if err != nil {
			return nil, fmt.Errorf("recolor b: %w", err)
		}
		fwd.Document = ResizeFonts(fwd.Document, cfg.FontDelta)
		rev.Document = ResizeFonts(rev.Document, cfg.FontDelta)
		out.Forward, out.Reverse = fwd, rev
		out.RecoloredA = ResizeFonts(recA, cfg.FontDelta)
		out.RecoloredB = ResizeFonts(recB, cfg.FontDelta)

	case ModeUnion:
		u, err := Union(a, b, palette, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("union: %w", err)
		}
		u.Document = ResizeFonts(u.Document, cfg.FontDelta)
		out.Union = u
	}
	return out, nil
}
